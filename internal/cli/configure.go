package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/model"
)

type ConfigureModel struct {
	focusIndex int
	inputs     []textinput.Model
	store      core.ConfigStore
	Saved      bool
	Err        error
}

func NewConfigureModel(store core.ConfigStore) (*ConfigureModel, error) {
	// Load existing config or defaults
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, err
	}

	m := &ConfigureModel{
		inputs: make([]textinput.Model, 4),
		store:  store,
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 512

		switch i {
		case 0:
			t.Placeholder = "https://script.google.com/macros/s/.../exec"
			t.SetValue(cfg.Endpoint)
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case 1:
			t.Placeholder = "0 (transport default)"
			t.CharLimit = 6
			t.SetValue(strconv.Itoa(cfg.RequestTimeout))
		case 2:
			t.Placeholder = "path to admin.ini"
			t.SetValue(cfg.PasswordsFile)
		case 3:
			t.Placeholder = model.DefaultTitle
			t.CharLimit = 64
			t.SetValue(cfg.Title)
		}

		m.inputs[i] = t
	}

	return m, nil
}

func (m *ConfigureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ConfigureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case successMsg:
		m.Saved = true
		return m, tea.Quit
	case errMsg:
		m.Err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Submit on enter when on submit button
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m, m.saveConfig
			}

			// Cycle indexes
			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i <= len(m.inputs)-1; i++ {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle

					continue
				}

				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = noStyle
				m.inputs[i].TextStyle = noStyle
			}

			return m, tea.Batch(cmds...)
		}
	}

	// Handle character input and blinking
	cmd := m.updateInputs(msg)

	return m, cmd
}

func (m *ConfigureModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	// Only text inputs with Focus() set will respond, so it's safe to simply
	// update all of them here without any further logic.
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *ConfigureModel) View() string {
	if m.Saved {
		return successStyle.Render("\n  ✓ Configuration saved successfully!\n\n")
	}

	if m.Err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  ✗ Error: %v\n\n", m.Err))
	}

	s := headerStyle.Render("Configure Phonebook Settings") + "\n"
	s += blurredStyle.Render("Edit the fields below and press Tab to navigate") + "\n\n"
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Endpoint URL:"), m.inputs[0].View())
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Request Timeout (seconds):"), m.inputs[1].View())
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Admin Passwords File:"), m.inputs[2].View())
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Directory Title:"), m.inputs[3].View())

	s += fmt.Sprintf("\n\n %s\n\n", button("Submit", m.focusIndex == len(m.inputs)))
	s += helpStyle.Render(" tab/shift+tab: navigate • enter: submit • esc: quit")

	return s
}

func (m *ConfigureModel) saveConfig() tea.Msg {
	cfg, err := m.config()
	if err != nil {
		return errMsg{err}
	}

	if err := m.store.SaveConfig(&cfg); err != nil {
		return errMsg{err}
	}

	return successMsg{}
}

// config builds the settings from the form. An unparsable timeout falls back
// to the transport default.
func (m *ConfigureModel) config() (model.Config, error) {
	endpoint := strings.TrimSpace(m.inputs[0].Value())
	if endpoint != "" {
		u, err := url.Parse(endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return model.Config{}, fmt.Errorf("invalid endpoint URL %q", endpoint)
		}
	}

	timeout, err := strconv.Atoi(strings.TrimSpace(m.inputs[1].Value()))
	if err != nil || timeout < 0 {
		timeout = 0
	}

	title := m.inputs[3].Value()
	if strings.TrimSpace(title) == "" {
		title = model.DefaultTitle
	}

	return model.Config{
		Endpoint:       endpoint,
		RequestTimeout: timeout,
		PasswordsFile:  strings.TrimSpace(m.inputs[2].Value()),
		Title:          title,
	}, nil
}

type successMsg struct{}
type errMsg struct{ err error }
