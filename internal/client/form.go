package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HarishP23/OneStop/internal/model"
)

var (
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(1, 0, 1, 2)

	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Padding(0, 0, 0, 2)

	formFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("99")).
				Bold(true)

	formBlurredStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Padding(1, 0, 0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(1, 0, 0, 2)

	formHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

// FieldSpec describes one text input of a form
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Secret      bool
}

// Option is one value of a choice picker
type Option struct {
	Value string
	Label string
}

// ChoiceSpec describes a picker cycled with the arrow keys; the first option is the default
type ChoiceSpec struct {
	Key     string
	Label   string
	Options []Option
}

// SubmitFunc sends the collected values and returns the message to show on success
type SubmitFunc func(ctx context.Context, values map[string]string) (string, error)

// Notice is the success or error banner shown under the form
type Notice struct {
	Text    string
	IsError bool
}

type submittedMsg struct {
	message string
	err     error
}

// FormModel is a bubbletea model for a single-request form
type FormModel struct {
	title       string
	submitLabel string
	fields      []FieldSpec
	inputs      []textinput.Model
	choice      *ChoiceSpec
	choiceIndex int
	focus       int
	submit      SubmitFunc
	timeout     time.Duration

	spinner    spinner.Model
	submitting bool
	succeeded  bool
	cancelled  bool
	notice     *Notice
}

// NewFormModel builds a form; choice may be nil
func NewFormModel(title, submitLabel string, fields []FieldSpec, choice *ChoiceSpec, submit SubmitFunc) FormModel {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 128
		ti.Prompt = "> "
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}

	return FormModel{
		title:       title,
		submitLabel: submitLabel,
		fields:      fields,
		inputs:      inputs,
		choice:      choice,
		submit:      submit,
		timeout:     20 * time.Second,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Values returns the trimmed input values plus the chosen option
func (m FormModel) Values() map[string]string {
	values := make(map[string]string, len(m.fields)+1)
	for i, f := range m.fields {
		values[f.Key] = strings.TrimSpace(m.inputs[i].Value())
	}
	if m.choice != nil && len(m.choice.Options) > 0 {
		values[m.choice.Key] = m.choice.Options[m.choiceIndex].Value
	}
	return values
}

// Missing lists the labels of required fields left empty
func (m FormModel) Missing() []string {
	var missing []string
	for i, f := range m.fields {
		if strings.TrimSpace(m.inputs[i].Value()) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// Succeeded reports whether the request finished without error
func (m FormModel) Succeeded() bool { return m.succeeded }

// Cancelled reports whether the user left the form without a successful submit
func (m FormModel) Cancelled() bool { return m.cancelled }

// Submitting reports whether a request is in flight
func (m FormModel) Submitting() bool { return m.submitting }

// Notice returns the banner currently shown, if any
func (m FormModel) Notice() *Notice { return m.notice }

// focus slots: inputs, then the picker when present, then the submit button
func (m FormModel) slots() int {
	n := len(m.inputs) + 1
	if m.choice != nil {
		n++
	}
	return n
}

func (m FormModel) choiceSlot() int {
	if m.choice == nil {
		return -1
	}
	return len(m.inputs)
}

func (m FormModel) submitSlot() int { return m.slots() - 1 }

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.notice = &Notice{Text: msg.err.Error(), IsError: true}
			return m, nil
		}
		m.succeeded = true
		m.notice = &Notice{Text: msg.message}
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}

		// input is frozen while the request is in flight
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "left", "right":
			if m.focus == m.choiceSlot() {
				m.cycleChoice(msg.String() == "right")
				return m, nil
			}
		case "enter":
			if m.focus == m.submitSlot() {
				return m.trySubmit()
			}
			return m, m.moveFocus(1)
		}
	}

	return m.updateInputs(msg)
}

func (m *FormModel) cycleChoice(forward bool) {
	n := len(m.choice.Options)
	if n == 0 {
		return
	}
	if forward {
		m.choiceIndex = (m.choiceIndex + 1) % n
	} else {
		m.choiceIndex = (m.choiceIndex - 1 + n) % n
	}
}

func (m *FormModel) moveFocus(delta int) tea.Cmd {
	m.focus = (m.focus + delta + m.slots()) % m.slots()

	var cmds []tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmds = append(cmds, m.inputs[i].Focus())
			continue
		}
		m.inputs[i].Blur()
	}
	return tea.Batch(cmds...)
}

func (m FormModel) trySubmit() (tea.Model, tea.Cmd) {
	if missing := m.Missing(); len(missing) > 0 {
		m.notice = &Notice{Text: "Please fill in: " + strings.Join(missing, ", "), IsError: true}
		return m, nil
	}

	m.submitting = true
	m.notice = nil
	return m, tea.Batch(m.spinner.Tick, m.submitCmd(m.Values()))
}

func (m FormModel) submitCmd(values map[string]string) tea.Cmd {
	submit, timeout := m.submit, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		message, err := submit(ctx, values)
		return submittedMsg{message: message, err: err}
	}
}

func (m FormModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m FormModel) View() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(m.title))
	b.WriteString("\n")

	for i, f := range m.fields {
		b.WriteString(formLabelStyle.Render(f.Label))
		b.WriteString("\n  ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.choice != nil {
		b.WriteString(formLabelStyle.Render(m.choice.Label))
		b.WriteString("\n  ")
		for i, opt := range m.choice.Options {
			label := "( ) " + opt.Label
			style := formBlurredStyle
			if i == m.choiceIndex {
				label = "(*) " + opt.Label
				if m.focus == m.choiceSlot() {
					style = formFocusedStyle
				}
			}
			b.WriteString(style.Render(label) + "  ")
		}
		b.WriteString("\n\n")
	}

	button := fmt.Sprintf("[ %s ]", m.submitLabel)
	switch {
	case m.submitting:
		b.WriteString("  " + m.spinner.View() + " Submitting...")
	case m.focus == m.submitSlot():
		b.WriteString("  " + formFocusedStyle.Render(button))
	default:
		b.WriteString("  " + formBlurredStyle.Render(button))
	}
	b.WriteString("\n")

	if m.notice != nil {
		if m.notice.IsError {
			b.WriteString(errorStyle.Render(m.notice.Text))
		} else {
			b.WriteString(successStyle.Render(m.notice.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString(formHintStyle.Render("tab/shift+tab move  ←/→ choose  enter submit  esc quit"))
	return b.String()
}

// RoleOptions are the roles offered on signup
var RoleOptions = []Option{
	{Value: model.RoleStudent, Label: "Student"},
	{Value: model.RoleRecruiter, Label: "Recruiter"},
}

// NewSignupForm returns the account creation form backed by c
func NewSignupForm(c *Client) FormModel {
	fields := []FieldSpec{
		{Key: "fullName", Label: "Full name", Placeholder: "Enter your full name"},
		{Key: "email", Label: "Email", Placeholder: "Enter your email"},
		{Key: "password", Label: "Password", Placeholder: "Password", Secret: true},
		{Key: "phoneNumber", Label: "Phone number", Placeholder: "Enter your phone number"},
	}
	choice := &ChoiceSpec{Key: "role", Label: "Are you a:", Options: RoleOptions}

	return NewFormModel("Create an account", "Sign up", fields, choice, func(ctx context.Context, v map[string]string) (string, error) {
		return c.Register(ctx, RegisterRequest{
			FullName:    v["fullName"],
			Email:       v["email"],
			Password:    v["password"],
			PhoneNumber: v["phoneNumber"],
			Role:        v["role"],
		})
	})
}

// NewLoginForm returns the login form; onLogin receives the server answer
func NewLoginForm(c *Client, onLogin func(*model.LoginResponse) error) FormModel {
	fields := []FieldSpec{
		{Key: "email", Label: "Email", Placeholder: "Enter your email"},
		{Key: "password", Label: "Password", Placeholder: "Password", Secret: true},
	}

	return NewFormModel("Log in", "Log in", fields, nil, func(ctx context.Context, v map[string]string) (string, error) {
		resp, err := c.Login(ctx, v["email"], v["password"])
		if err != nil {
			return "", err
		}
		if onLogin != nil {
			if err := onLogin(resp); err != nil {
				return "", err
			}
		}
		return resp.Message, nil
	})
}

// RunForm runs m full screen and returns its final state
func RunForm(m FormModel) (FormModel, error) {
	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, err
	}
	return result.(FormModel), nil
}
