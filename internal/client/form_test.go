package client

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarishP23/OneStop/internal/model"
)

func typeText(m FormModel, text string) FormModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(FormModel)
}

func press(m FormModel, key tea.KeyType) (FormModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(FormModel), cmd
}

// runSubmit executes a batch returned by submit and returns the submittedMsg
func runSubmit(t *testing.T, cmd tea.Cmd) submittedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	require.True(t, ok, "expected a batch of commands")
	for _, c := range batch {
		if c == nil {
			continue
		}
		if sm, ok := c().(submittedMsg); ok {
			return sm
		}
	}
	t.Fatal("no submittedMsg in batch")
	return submittedMsg{}
}

func testForm(submit SubmitFunc) FormModel {
	fields := []FieldSpec{
		{Key: "fullName", Label: "Full name"},
		{Key: "email", Label: "Email"},
		{Key: "password", Label: "Password", Secret: true},
		{Key: "phoneNumber", Label: "Phone number"},
	}
	choice := &ChoiceSpec{Key: "role", Label: "Are you a:", Options: RoleOptions}
	return NewFormModel("Create an account", "Sign up", fields, choice, submit)
}

func fillAll(m FormModel) FormModel {
	m = typeText(m, "Alice Nguyen")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, " alice@example.com ")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "Secret123")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "0812345678")
	m, _ = press(m, tea.KeyTab)
	return m
}

func TestFormCollectsValuesAndDefaultRole(t *testing.T) {
	m := fillAll(testForm(nil))

	values := m.Values()
	assert.Equal(t, "Alice Nguyen", values["fullName"])
	assert.Equal(t, "alice@example.com", values["email"])
	assert.Equal(t, "Secret123", values["password"])
	assert.Equal(t, "0812345678", values["phoneNumber"])
	assert.Equal(t, "student", values["role"])
	assert.Empty(t, m.Missing())
}

func TestFormRolePicker(t *testing.T) {
	m := fillAll(testForm(nil))

	m, _ = press(m, tea.KeyRight)
	assert.Equal(t, "recruiter", m.Values()["role"])

	m, _ = press(m, tea.KeyRight)
	assert.Equal(t, "student", m.Values()["role"])

	m, _ = press(m, tea.KeyLeft)
	assert.Equal(t, "recruiter", m.Values()["role"])
}

func TestFormRequiredFields(t *testing.T) {
	called := false
	m := testForm(func(context.Context, map[string]string) (string, error) {
		called = true
		return "", nil
	})
	m = typeText(m, "Alice")

	m, _ = press(m, tea.KeyShiftTab) // wraps to the submit button
	m, cmd := press(m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.False(t, called)
	assert.False(t, m.Submitting())
	require.NotNil(t, m.Notice())
	assert.True(t, m.Notice().IsError)
	assert.Equal(t, "Please fill in: Email, Password, Phone number", m.Notice().Text)
}

func TestFormSubmitSuccess(t *testing.T) {
	var got map[string]string
	m := fillAll(testForm(func(_ context.Context, v map[string]string) (string, error) {
		got = v
		return "User successfully created", nil
	}))

	m, _ = press(m, tea.KeyTab) // picker -> submit
	m, cmd := press(m, tea.KeyEnter)
	require.True(t, m.Submitting())
	assert.Contains(t, m.View(), "Submitting...")

	// keys are ignored while the request is in flight
	frozen, extra := press(m, tea.KeyEnter)
	assert.Nil(t, extra)
	assert.True(t, frozen.Submitting())

	msg := runSubmit(t, cmd)
	assert.Equal(t, "alice@example.com", got["email"])

	next, quit := m.Update(msg)
	m = next.(FormModel)
	assert.False(t, m.Submitting())
	assert.True(t, m.Succeeded())
	assert.NotNil(t, quit)
	require.NotNil(t, m.Notice())
	assert.False(t, m.Notice().IsError)
	assert.Equal(t, "User successfully created", m.Notice().Text)
}

func TestFormSubmitError(t *testing.T) {
	m := fillAll(testForm(func(context.Context, map[string]string) (string, error) {
		return "", &APIError{Status: 400, Message: "User already exists"}
	}))
	m, _ = press(m, tea.KeyTab)
	m, cmd := press(m, tea.KeyEnter)

	next, quit := m.Update(runSubmit(t, cmd))
	m = next.(FormModel)

	assert.Nil(t, quit)
	assert.False(t, m.Succeeded())
	assert.False(t, m.Submitting())
	require.NotNil(t, m.Notice())
	assert.True(t, m.Notice().IsError)
	assert.Contains(t, m.View(), "User already exists")

	// the form stays usable for another attempt
	m, cmd = press(m, tea.KeyEnter)
	assert.True(t, m.Submitting())
	assert.NotNil(t, cmd)
}

func TestFormEscCancels(t *testing.T) {
	m, cmd := press(testForm(nil), tea.KeyEsc)
	assert.True(t, m.Cancelled())
	assert.NotNil(t, cmd)
}

func TestLoginFormCallsOnLogin(t *testing.T) {
	srv := newFakeAPI(t)
	c := New(srv.URL, "")

	var token string
	m := NewLoginForm(c, func(resp *model.LoginResponse) error {
		token = resp.Token
		return nil
	})
	m = typeText(m, "student1@example.com")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "SeedPass123!")
	m, _ = press(m, tea.KeyTab)
	m, cmd := press(m, tea.KeyEnter)

	msg := runSubmit(t, cmd)
	require.NoError(t, msg.err)
	assert.Equal(t, "Successfully logged in", msg.message)
	assert.Equal(t, "token-123", token)
}

func TestLoginFormPropagatesOnLoginError(t *testing.T) {
	srv := newFakeAPI(t)
	c := New(srv.URL, "")

	m := NewLoginForm(c, func(*model.LoginResponse) error { return errors.New("cannot save config") })
	m = typeText(m, "student1@example.com")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "SeedPass123!")
	m, _ = press(m, tea.KeyTab)
	_, cmd := press(m, tea.KeyEnter)

	msg := runSubmit(t, cmd)
	assert.EqualError(t, msg.err, "cannot save config")
}
