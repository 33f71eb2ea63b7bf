package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarishP23/OneStop/internal/config"
	"github.com/HarishP23/OneStop/internal/model"
)

func TestNew_NopWithoutHost(t *testing.T) {
	n := New(config.SMTPSettings{})
	assert.False(t, n.Enabled())
	assert.NoError(t, n.Send("a@b.co", "s", "b"))
}

func TestNew_SMTPWithHost(t *testing.T) {
	n := New(config.SMTPSettings{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"})
	assert.True(t, n.Enabled())
	_, ok := n.(*SMTPNotifier)
	assert.True(t, ok)
}

func TestTemplates(t *testing.T) {
	app := model.Application{Name: "Alice <script>", JobTitle: "Backend Engineer", Status: model.ApplicationStatusAccepted}

	subject, body, err := ApplicationSubmitted(app)
	require.NoError(t, err)
	assert.Equal(t, "Application received: Backend Engineer", subject)
	assert.Contains(t, body, "Backend Engineer")
	assert.NotContains(t, body, "<script>")

	subject, body, err = ApplicationStatusChanged(app)
	require.NoError(t, err)
	assert.Equal(t, "Application accepted: Backend Engineer", subject)
	assert.Contains(t, body, "changed to <em>accepted</em>")
}
