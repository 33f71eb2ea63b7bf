package utilities

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarishP23/OneStop/internal/model"
)

func newContext(header string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c.Request = req
	return c
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken(newContext("Bearer abc.def.ghi"))
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken(newContext("bearer xyz"))
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, h := range []string{"", "Bearer ", "Basic dXNlcjpwYXNz", "Bearer    "} {
		_, err := ExtractBearerToken(newContext(h))
		assert.Error(t, err, h)
	}
}

func TestExtractAccount(t *testing.T) {
	c := newContext("")
	_, err := ExtractAccount(c)
	assert.EqualError(t, err, "User information not provided")

	c.Set("user", "not an account")
	_, err = ExtractAccount(c)
	assert.EqualError(t, err, "Failed to assert type")

	want := model.Account{Email: "a@b.co", Role: model.RoleStudent}
	c.Set("user", want)
	got, err := ExtractAccount(c)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, VerifyPassword("correct horse", hash))
	assert.False(t, VerifyPassword("battery staple", hash))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"student", "recruiter"}, "recruiter"))
	assert.False(t, Contains([]string{"student"}, "mentor"))
	assert.False(t, Contains(nil, "mentor"))
}
