package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]struct {
		want string
		ok   bool
	}{
		"student":   {RoleStudent, true},
		" Student ": {RoleStudent, true},
		"recruiter": {RoleRecruiter, true},
		"recruitor": {RoleRecruiter, true},
		"RECRUITOR": {RoleRecruiter, true},
		"mentor":    {RoleMentor, true},
		"admin":     {"", false},
		"":          {"", false},
	}

	for in, tc := range cases {
		got, ok := NormalizeRole(in)
		assert.Equal(t, tc.want, got, in)
		assert.Equal(t, tc.ok, ok, in)
	}
}

func TestIsValidApplicationStatus(t *testing.T) {
	for _, s := range []string{"pending", "accepted", "rejected"} {
		assert.True(t, IsValidApplicationStatus(s), s)
	}
	for _, s := range []string{"", "Pending", "hired", "in consideration"} {
		assert.False(t, IsValidApplicationStatus(s), s)
	}
}

func TestApplicationBeforeCreate(t *testing.T) {
	app := Application{Name: "A"}
	assert.NoError(t, app.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, app.ID)
	assert.Equal(t, ApplicationStatusPending, app.Status)

	id := uuid.New()
	accepted := Application{ID: id, Status: ApplicationStatusAccepted}
	assert.NoError(t, accepted.BeforeCreate(nil))
	assert.Equal(t, id, accepted.ID)
	assert.Equal(t, ApplicationStatusAccepted, accepted.Status)
}

func TestAccountBeforeCreateNormalizesEmail(t *testing.T) {
	u := User{Account: Account{Email: "  Jane.Doe@Example.COM "}}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "jane.doe@example.com", u.Email)
	assert.NotEqual(t, uuid.Nil, u.ID)
}
