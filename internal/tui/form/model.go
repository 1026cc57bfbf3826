// Package form is the create/edit form for a single user record.
//
// The form is in CREATE mode when it has no target and in EDIT mode when it is
// bound to one record. Changing the target always reseeds the draft. Submit
// validates locally and hands a SubmitMsg to the caller, which reports the
// outcome back through Done.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/userdesk/internal/users"
)

const maxInlineErrorLen = 300

type field int

const (
	fieldUsername field = iota
	fieldEmail
	fieldPassword
	fieldFullName
	fieldDOB
	fieldPhone
	fieldAddress
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldUsername: "Username",
	fieldEmail:    "Email",
	fieldPassword: "Password",
	fieldFullName: "Full Name",
	fieldDOB:      "Date of Birth",
	fieldPhone:    "Phone",
	fieldAddress:  "Address",
}

// SubmitMsg carries a validated payload out of the form.
type SubmitMsg struct {
	Mode    Mode
	UserID  int64
	Payload users.Payload
}

// CancelEditMsg asks the owner to clear the edit target.
type CancelEditMsg struct{}

// CloseMsg asks the owner to move focus away from the form.
type CloseMsg struct{}

type Model struct {
	target     *users.User
	inputs     []textinput.Model
	// seed holds the raw values the inputs were last seeded with and shown
	// what the inputs displayed for them. An input whose value still equals
	// shown reads back as seed, so untouched fields survive the textinput
	// sanitizer unchanged.
	seed       [fieldCount]string
	shown      [fieldCount]string
	focus      field
	focused    bool
	errText    string
	errVisible bool
	submitting bool
	keys       KeyMap
}

func New() Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 0
		in.Width = 32
		inputs[i] = in
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	inputs[fieldDOB].Placeholder = "YYYY-MM-DD"
	return Model{inputs: inputs, keys: DefaultKeyMap()}
}

func (m Model) Mode() Mode {
	if m.target != nil {
		return ModeEdit
	}
	return ModeCreate
}

// Target returns the record being edited.
func (m Model) Target() (users.User, bool) {
	if m.target == nil {
		return users.User{}, false
	}
	return *m.target, true
}

// SetTarget binds the form to u, or returns it to CREATE mode when u is nil.
// The draft is reseeded and any inline error cleared either way.
func (m Model) SetTarget(u *users.User) Model {
	if u == nil {
		m.target = nil
		m = m.setDraft(Draft{})
	} else {
		cp := *u
		m.target = &cp
		m = m.setDraft(DraftFrom(cp))
	}
	m = m.DismissError()
	return m.focusField(fieldUsername)
}

// Draft reads the current field values.
func (m Model) Draft() Draft {
	d := Draft{
		Username: m.value(fieldUsername),
		Email:    m.value(fieldEmail),
		Password: m.value(fieldPassword),
		FullName: m.value(fieldFullName),
		DOB:      m.value(fieldDOB),
		Phone:    m.value(fieldPhone),
		Address:  m.value(fieldAddress),
	}
	if m.target != nil {
		d.UserID = m.target.UserID
	}
	return d
}

func (m Model) value(f field) string {
	v := m.inputs[f].Value()
	if v == m.shown[f] {
		return m.seed[f]
	}
	return v
}

func (m Model) setDraft(d Draft) Model {
	m.seed = [fieldCount]string{
		fieldUsername: d.Username,
		fieldEmail:    d.Email,
		fieldPassword: d.Password,
		fieldFullName: d.FullName,
		fieldDOB:      d.DOB,
		fieldPhone:    d.Phone,
		fieldAddress:  d.Address,
	}
	m.inputs = cloneInputs(m.inputs)
	for i := range m.inputs {
		m.inputs[i].SetValue(m.seed[i])
		m.shown[i] = m.inputs[i].Value()
	}
	return m
}

// Reset clears the draft in CREATE mode. It is ignored while submitting.
func (m Model) Reset() Model {
	if m.submitting || m.Mode() != ModeCreate {
		return m
	}
	return m.setDraft(Draft{}).DismissError().focusField(fieldUsername)
}

// Submit validates the draft. On failure the message is shown inline and no
// command is returned; on success the form enters the submitting state and
// emits a SubmitMsg.
func (m Model) Submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m = m.DismissError()
	mode := m.Mode()
	d := m.Draft()
	if err := d.Validate(mode); err != nil {
		return m.showError(err.Error()), nil
	}
	m.submitting = true
	msg := SubmitMsg{Mode: mode, UserID: d.UserID, Payload: d.Payload(mode)}
	return m, func() tea.Msg { return msg }
}

// Done reports the outcome of the dispatched save. A successful create
// clears the draft; a successful update leaves the form untouched until the
// owner clears the target. A failure keeps the draft and shows the error.
func (m Model) Done(err error) Model {
	m.submitting = false
	if err != nil {
		return m.showError(inlineError(err))
	}
	if m.Mode() == ModeCreate {
		m = m.setDraft(Draft{}).focusField(fieldUsername)
	}
	return m
}

func (m Model) Submitting() bool { return m.submitting }

// Error returns the inline error, if one is showing.
func (m Model) Error() (string, bool) {
	return m.errText, m.errVisible
}

func (m Model) DismissError() Model {
	m.errVisible = false
	m.errText = ""
	return m
}

func (m Model) showError(text string) Model {
	m.errText = text
	m.errVisible = true
	return m
}

func (m Model) Focused() bool { return m.focused }

// Focus gives the form keyboard focus, starting at the current field.
func (m Model) Focus() (Model, tea.Cmd) {
	m.focused = true
	m = m.focusField(m.focus)
	return m, textinput.Blink
}

func (m Model) Blur() Model {
	m.focused = false
	m.inputs = cloneInputs(m.inputs)
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m
}

func (m Model) focusField(f field) Model {
	m.focus = f
	m.inputs = cloneInputs(m.inputs)
	for i := range m.inputs {
		if m.focused && field(i) == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// Keys returns the bindings that currently apply.
func (m Model) Keys() KeyMap {
	k := m.keys
	k.Reset.SetEnabled(m.Mode() == ModeCreate && !m.submitting)
	k.Submit.SetEnabled(!m.submitting)
	k.Dismiss.SetEnabled(m.errVisible)
	if m.Mode() == ModeEdit {
		k.Cancel.SetHelp("esc", "cancel edit")
		k.Cancel.SetEnabled(!m.submitting)
	}
	return k
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}
	keys := m.Keys()
	switch {
	case key.Matches(keyMsg, keys.Next):
		return m.focusField((m.focus + 1) % fieldCount), nil
	case key.Matches(keyMsg, keys.Prev):
		return m.focusField((m.focus + fieldCount - 1) % fieldCount), nil
	case key.Matches(keyMsg, keys.Submit):
		return m.Submit()
	case key.Matches(keyMsg, keys.Reset):
		return m.Reset(), nil
	case key.Matches(keyMsg, keys.Dismiss):
		return m.DismissError(), nil
	case key.Matches(keyMsg, m.keys.Cancel):
		if m.Mode() == ModeEdit {
			if m.submitting {
				return m, nil
			}
			return m, func() tea.Msg { return CancelEditMsg{} }
		}
		return m, func() tea.Msg { return CloseMsg{} }
	}
	// Keys belonging to a disabled control are swallowed rather than typed.
	if key.Matches(keyMsg, m.keys.Submit, m.keys.Reset, m.keys.Dismiss) {
		return m, nil
	}
	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	m.inputs = cloneInputs(m.inputs)
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// inlineError keeps the first line of err's message, capped at 300 characters.
func inlineError(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "Failed to save user"
	}
	line, _, _ := strings.Cut(msg, "\n")
	line = strings.TrimRight(line, "\r")
	r := []rune(line)
	if len(r) > maxInlineErrorLen {
		line = string(r[:maxInlineErrorLen])
	}
	return line
}

func cloneInputs(in []textinput.Model) []textinput.Model {
	out := make([]textinput.Model, len(in))
	copy(out, in)
	return out
}
