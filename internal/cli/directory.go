package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/model"
)

type viewMode int

const (
	modeBrowse viewMode = iota
	modeSearch
	modeLogin
	modeForm
	modeConfirmDelete
)

// cardHeight is the rendered height of one card including its border
const cardHeight = 6

// loadedMsg reports the end of a read
type loadedMsg struct {
	err error
}

// changeDoneMsg reports the end of a change and its follow-up read
type changeDoneMsg struct {
	action core.Action
	err    error
}

type notice struct {
	text string
	ok   bool
}

// DirectoryModelOptions configures a DirectoryModel
type DirectoryModelOptions struct {
	Title   string
	Session model.Session
	Context context.Context
}

// DirectoryModel is the interactive directory browser
type DirectoryModel struct {
	dir     *core.Directory
	auth    *core.Authenticator
	session model.Session
	title   string
	ctx     context.Context

	mode     viewMode
	search   textinput.Model
	password textinput.Model
	form     entryForm
	spinner  spinner.Model

	view    []model.Record
	cursor  int
	pending model.Record

	busy     bool
	notice   notice
	width    int
	height   int
	quitting bool
}

// NewDirectoryModel creates the browser. The first read starts in Init.
func NewDirectoryModel(dir *core.Directory, auth *core.Authenticator, opts DirectoryModelOptions) DirectoryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	search := textinput.New()
	search.Placeholder = "Search by name, extension, or location..."
	search.Prompt = "/ "
	search.Cursor.Style = cursorStyle
	search.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "Enter admin password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Cursor.Style = cursorStyle

	title := opts.Title
	if title == "" {
		title = model.DefaultTitle
	}

	session := opts.Session
	if session.Role == "" {
		session = model.UserSession()
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if auth == nil {
		auth = core.NewAuthenticator(nil)
	}

	return DirectoryModel{
		dir:      dir,
		auth:     auth,
		session:  session,
		title:    title,
		ctx:      ctx,
		search:   search,
		password: password,
		spinner:  s,
		busy:     true,
		width:    80,
		height:   24,
	}
}

func (m DirectoryModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.readCmd())
}

// Session returns the current session
func (m DirectoryModel) Session() model.Session {
	return m.session
}

// Visible returns the records currently shown
func (m DirectoryModel) Visible() []model.Record {
	return m.view
}

func (m DirectoryModel) readCmd() tea.Cmd {
	dir, ctx := m.dir, m.ctx

	return func() tea.Msg {
		return loadedMsg{err: dir.Read(ctx)}
	}
}

func (m DirectoryModel) changeCmd(action core.Action, rec model.Record) tea.Cmd {
	dir, ctx := m.dir, m.ctx

	return func() tea.Msg {
		var err error

		switch action {
		case core.ActionAdd:
			err = dir.Add(ctx, rec)
		case core.ActionUpdate:
			err = dir.Update(ctx, rec.RowIndex, rec)
		case core.ActionDelete:
			// the y/n prompt already asked
			err = dir.Delete(ctx, rec.RowIndex, func(model.Record) bool { return true })
		}

		return changeDoneMsg{action: action, err: err}
	}
}

// start marks the model busy and runs cmd alongside the spinner.
func (m *DirectoryModel) start(cmd tea.Cmd) tea.Cmd {
	m.busy = true

	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *DirectoryModel) refilter() {
	m.view = core.Filter(m.dir.Records(), m.search.Value())

	if m.cursor >= len(m.view) {
		m.cursor = len(m.view) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *DirectoryModel) setNotice(text string, ok bool) {
	m.notice = notice{text: text, ok: ok}
}

func (m DirectoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case loadedMsg:
		m.busy = false

		if msg.err != nil {
			m.setNotice(capitalize(msg.err.Error()), false)
		}

		m.refilter()

		return m, nil

	case changeDoneMsg:
		m.busy = false
		m.handleChangeDone(msg)
		m.refilter()

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeLogin:
			return m.updateLogin(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m.forward(msg)
}

// forward passes non-key messages such as cursor blinks to the active input
func (m DirectoryModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeLogin:
		m.password, cmd = m.password.Update(msg)
	case modeForm:
		m.form, _, cmd = m.form.update(msg)
	}

	return m, cmd
}

func (m *DirectoryModel) handleChangeDone(msg changeDoneMsg) {
	past := pastTense(msg.action)

	switch {
	case msg.err == nil:
		m.setNotice(fmt.Sprintf("Entry %s successfully!", past), true)

		if m.mode == modeForm {
			m.mode = modeBrowse
		}

	case errors.Is(msg.err, core.ErrFetchFailed):
		// the change went through; only the refresh failed
		m.setNotice(fmt.Sprintf("Entry %s successfully, but reloading failed: %v", past, errors.Unwrap(msg.err)), false)

		if m.mode == modeForm {
			m.mode = modeBrowse
		}

	case errors.Is(msg.err, core.ErrValidationFailed):
		m.setNotice("All fields required!", false)

	default:
		m.setNotice(capitalize(msg.err.Error()), false)
	}
}

func (m DirectoryModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()

	case "esc":
		m.search.SetValue("")
		m.refilter()

		return m, nil

	case "r":
		if m.busy {
			return m, nil
		}

		m.notice = notice{}

		return m, m.start(m.readCmd())

	case "a":
		if m.session.IsAdmin() {
			m.session = model.UserSession()
			m.setNotice("Logged out of admin mode", true)

			return m, nil
		}

		m.mode = modeLogin
		m.password.SetValue("")

		return m, m.password.Focus()

	case "n", "e", "d":
		return m.startAdminAction(msg.String())

	case "left", "h":
		m.move(-1)
	case "right", "l":
		m.move(1)
	case "up", "k":
		m.move(-m.columns())
	case "down", "j":
		m.move(m.columns())
	}

	return m, nil
}

func (m DirectoryModel) startAdminAction(key string) (tea.Model, tea.Cmd) {
	if !m.session.IsAdmin() {
		m.setNotice("Admin access required. Press a to log in.", false)
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	if key == "n" {
		m.form = newEntryForm(model.Record{}, -1)
		m.mode = modeForm

		return m, textinput.Blink
	}

	selected, ok := m.selected()
	if !ok {
		m.setNotice("No entry selected", false)
		return m, nil
	}

	if key == "e" {
		m.form = newEntryForm(selected.Draft(), selected.RowIndex)
		m.mode = modeForm

		return m, textinput.Blink
	}

	m.pending = selected
	m.mode = modeConfirmDelete

	return m, nil
}

func (m DirectoryModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.mode = modeBrowse
		m.refilter()

		return m, nil

	case "enter", "down", "tab":
		m.search.Blur()
		m.mode = modeBrowse

		return m, nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)
	m.refilter()

	return m, cmd
}

func (m DirectoryModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.password.Blur()
		m.password.SetValue("")
		m.mode = modeBrowse

		return m, nil

	case "enter":
		session, err := m.auth.Login(m.password.Value())

		m.password.Blur()
		m.password.SetValue("")
		m.mode = modeBrowse

		if err != nil {
			m.setNotice("Invalid password!", false)
			return m, nil
		}

		m.session = session
		m.setNotice("Admin access granted!", true)

		return m, nil
	}

	var cmd tea.Cmd

	m.password, cmd = m.password.Update(msg)

	return m, cmd
}

func (m DirectoryModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, result, cmd := m.form.update(msg)
	m.form = form

	switch result {
	case formCancelled:
		m.mode = modeBrowse
		return m, nil

	case formSubmitted:
		if m.busy {
			return m, nil
		}

		rec := m.form.record()
		if err := core.ValidateDraft(rec); err != nil {
			m.setNotice("All fields required!", false)
			return m, nil
		}

		action := core.ActionAdd
		if m.form.editing() {
			action = core.ActionUpdate
		}

		return m, m.start(m.changeCmd(action, rec))
	}

	return m, cmd
}

func (m DirectoryModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeBrowse

		if m.busy {
			return m, nil
		}

		return m, m.start(m.changeCmd(core.ActionDelete, m.pending))

	case "n", "N", "esc":
		m.mode = modeBrowse
	}

	return m, nil
}

func (m DirectoryModel) selected() (model.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view) {
		return model.Record{}, false
	}

	return m.view[m.cursor], true
}

func (m *DirectoryModel) move(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.view) {
		return
	}

	m.cursor = next
}

// columns returns how many cards fit side by side
func (m DirectoryModel) columns() int {
	return gridColumns(m.width)
}

func gridColumns(width int) int {
	switch {
	case width >= 120:
		return 3
	case width >= 76:
		return 2
	default:
		return 1
	}
}

func (m DirectoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.headerView() + "\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.view() + "\n")
		b.WriteString(m.noticeView())

		return b.String()

	case modeLogin:
		b.WriteString(headerStyle.Render("Admin Login") + "\n\n")
		b.WriteString(" " + m.password.View() + "\n\n")
		b.WriteString(helpStyle.Render(" enter: log in • esc: cancel"))

		return b.String()
	}

	b.WriteString(m.search.View() + "\n")

	if m.dir.Loaded() {
		b.WriteString(blurredStyle.Render(fmt.Sprintf("Showing %d of %d contacts", len(m.view), m.dir.Len())) + "\n")
	}

	b.WriteString("\n")

	switch {
	case m.busy && !m.dir.Loaded():
		b.WriteString(fmt.Sprintf(" %s Loading directory...\n", m.spinner.View()))
	case len(m.view) == 0 && m.dir.Loaded():
		b.WriteString(blurredStyle.Render(" No results found") + "\n")
	default:
		b.WriteString(m.gridView() + "\n")
	}

	if m.mode == modeConfirmDelete {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf(" Delete %s from the directory? (y/n)", m.pending.Username)) + "\n")
	}

	b.WriteString(m.noticeView())
	b.WriteString(m.helpView())

	return b.String()
}

func (m DirectoryModel) headerView() string {
	badge := userBadgeStyle.Render(m.session.Label())
	if m.session.IsAdmin() {
		badge = adminBadgeStyle.Render(m.session.Label())
	}

	header := headerStyle.Render(m.title) + "  " + badge

	if m.busy && m.dir.Loaded() {
		header += "  " + m.spinner.View()
	}

	if m.session.IsAdmin() {
		header += "\n" + adminBannerStyle.Render("Admin Mode: you can add, edit and delete entries")
	}

	return header
}

func (m DirectoryModel) noticeView() string {
	if m.notice.text == "" {
		return ""
	}

	if m.notice.ok {
		return "\n" + successStyle.Render(" ✓ "+m.notice.text) + "\n"
	}

	return "\n" + errorStyle.Render(" ✗ "+m.notice.text) + "\n"
}

func (m DirectoryModel) helpView() string {
	keys := []string{"/: search", "esc: clear", "arrows: move", "r: refresh"}

	if m.session.IsAdmin() {
		keys = append(keys, "n: new", "e: edit", "d: delete", "a: log out")
	} else {
		keys = append(keys, "a: admin")
	}

	keys = append(keys, "q: quit")

	return "\n" + helpStyle.Render(" "+strings.Join(keys, " • "))
}

// gridView renders the visible cards in rows, scrolled so the selected card
// is on screen.
func (m DirectoryModel) gridView() string {
	cols := m.columns()
	cardWidth := max(m.width/cols-2, 24)

	visibleRows := max((m.height-10)/cardHeight, 1)
	cursorRow := m.cursor / cols

	firstRow := 0
	if cursorRow >= visibleRows {
		firstRow = cursorRow - visibleRows + 1
	}

	var rows []string

	for start := firstRow * cols; start < len(m.view) && len(rows) < visibleRows; start += cols {
		end := min(start+cols, len(m.view))

		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(m.view[i], cardWidth, i == m.cursor))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard draws one entry. Location is only shown when present.
func renderCard(rec model.Record, width int, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}

	lines := []string{
		avatarStyle.Render(rec.Initial()) + " " + nameStyle.Render(rec.Username),
		roleStyle.Render("Employee"),
		"Ext. " + extensionStyle.Render(rec.Extension) + "  " + blurredStyle.Render(rec.DialURI()),
	}

	if strings.TrimSpace(rec.Location) != "" {
		lines = append(lines, locationStyle.Render("Location: "+rec.Location))
	} else {
		lines = append(lines, "")
	}

	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func pastTense(action core.Action) string {
	switch action {
	case core.ActionAdd:
		return "added"
	case core.ActionUpdate:
		return "updated"
	case core.ActionDelete:
		return "deleted"
	default:
		return string(action)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}
