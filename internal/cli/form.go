package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/phonebook/internal/model"
)

const fmtField = " %s\n %s\n\n"

// formResult is what a key press did to the entry form
type formResult int

const (
	formEditing formResult = iota
	formSubmitted
	formCancelled
)

// entryForm collects location, extension and name for a new or existing
// entry. Focus cycles through the inputs and then the Save and Cancel
// buttons.
type entryForm struct {
	inputs     []textinput.Model
	focusIndex int

	// rowIndex is the entry being edited, -1 for a new entry
	rowIndex int
}

var formLabels = []string{"Location:", "Extension:", "Name:"}

func newEntryForm(rec model.Record, rowIndex int) entryForm {
	f := entryForm{
		inputs:   make([]textinput.Model, 3),
		rowIndex: rowIndex,
	}

	var t textinput.Model
	for i := range f.inputs {
		t = textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 128

		switch i {
		case 0:
			t.Placeholder = "e.g., A13, Office"
			t.SetValue(rec.Location)
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case 1:
			t.Placeholder = "e.g., 701"
			t.CharLimit = 32
			t.SetValue(rec.Extension)
		case 2:
			t.Placeholder = "e.g., John Doe"
			t.SetValue(rec.Username)
		}

		f.inputs[i] = t
	}

	return f
}

func (f entryForm) editing() bool {
	return f.rowIndex >= 0
}

func (f entryForm) title() string {
	if f.editing() {
		return "Edit Entry"
	}

	return "Add New Entry"
}

// record returns the entered values, unmodified.
func (f entryForm) record() model.Record {
	return model.Record{
		Location:  f.inputs[0].Value(),
		Extension: f.inputs[1].Value(),
		Username:  f.inputs[2].Value(),
		RowIndex:  f.rowIndex,
	}
}

func (f entryForm) saveIndex() int {
	return len(f.inputs)
}

func (f entryForm) cancelIndex() int {
	return len(f.inputs) + 1
}

func (f entryForm) update(msg tea.Msg) (entryForm, formResult, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch s := msg.String(); s {
		case "esc":
			return f, formCancelled, nil

		case "tab", "shift+tab", "enter", "up", "down":
			if s == "enter" {
				switch f.focusIndex {
				case f.saveIndex():
					return f, formSubmitted, nil
				case f.cancelIndex():
					return f, formCancelled, nil
				}
			}

			// Cycle indexes
			if s == "up" || s == "shift+tab" {
				f.focusIndex--
			} else {
				f.focusIndex++
			}

			if f.focusIndex > f.cancelIndex() {
				f.focusIndex = 0
			} else if f.focusIndex < 0 {
				f.focusIndex = f.cancelIndex()
			}

			return f, formEditing, f.refocus()
		}
	}

	// Only the focused input responds
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}

	return f, formEditing, tea.Batch(cmds...)
}

func (f *entryForm) refocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))

	for i := range f.inputs {
		if i == f.focusIndex {
			cmds[i] = f.inputs[i].Focus()
			f.inputs[i].PromptStyle = focusedStyle
			f.inputs[i].TextStyle = focusedStyle

			continue
		}

		f.inputs[i].Blur()
		f.inputs[i].PromptStyle = noStyle
		f.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (f entryForm) view() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(f.title()) + "\n\n")

	for i, input := range f.inputs {
		b.WriteString(fmt.Sprintf(fmtField, blurredStyle.Render(formLabels[i]), input.View()))
	}

	b.WriteString(fmt.Sprintf(" %s  %s\n\n",
		button("Save", f.focusIndex == f.saveIndex()),
		button("Cancel", f.focusIndex == f.cancelIndex()),
	))
	b.WriteString(helpStyle.Render(" tab/shift+tab: navigate • enter: select • esc: cancel"))

	return formStyle.Render(b.String())
}
