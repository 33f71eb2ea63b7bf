package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Backend…", truncate("Backend Engineer", 8))
	assert.Equal(t, "ภาษาไ…", truncate("ภาษาไทยยาว", 6))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"signup", "login", "logout", "jobs", "apply", "applications"} {
		assert.True(t, names[want], want)
	}
}
