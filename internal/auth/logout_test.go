package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarishP23/OneStop/internal/database"
)

func newLogoutContext(t *testing.T, header string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(http.MethodPost, "/logout", nil)
	require.NoError(t, err)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c.Request = req
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestLogoutSuccess(t *testing.T) {
	accessToken, err := GetAccessToken(t, testDB, database.TestStudent1.Email, database.TestSeedPassword)
	require.NoError(t, err)

	blacklistStore := NewInMemoryBlacklistStore()
	defer blacklistStore.Close()
	logoutController := NewLogoutController(blacklistStore)

	c, rec := newLogoutContext(t, "Bearer "+accessToken)

	// RequireAuth normally stores the parsed claims
	token, err := ValidatedToken(accessToken)
	require.NoError(t, err)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	c.Set("claims", claims)

	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully logged out", decodeBody(t, rec)["message"])

	isBlacklisted, err := blacklistStore.IsBlacklisted(c.Request.Context(), accessToken)
	require.NoError(t, err)
	assert.True(t, isBlacklisted, "Token should be blacklisted after logout")
}

func TestLogoutMissingToken(t *testing.T) {
	blacklistStore := NewInMemoryBlacklistStore()
	defer blacklistStore.Close()
	logoutController := NewLogoutController(blacklistStore)

	c, rec := newLogoutContext(t, "")
	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "authorization header")
}

func TestLogoutInvalidTokenFormat(t *testing.T) {
	blacklistStore := NewInMemoryBlacklistStore()
	defer blacklistStore.Close()
	logoutController := NewLogoutController(blacklistStore)

	c, rec := newLogoutContext(t, "InvalidFormat token123")
	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "message")
}

func TestLogoutMissingClaims(t *testing.T) {
	accessToken, err := GetAccessToken(t, testDB, database.TestStudent1.Email, database.TestSeedPassword)
	require.NoError(t, err)

	blacklistStore := NewInMemoryBlacklistStore()
	defer blacklistStore.Close()
	logoutController := NewLogoutController(blacklistStore)

	c, rec := newLogoutContext(t, "Bearer "+accessToken)
	logoutController.LogoutHandler(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token claims", decodeBody(t, rec)["message"])

	isBlacklisted, err := blacklistStore.IsBlacklisted(c.Request.Context(), accessToken)
	require.NoError(t, err)
	assert.False(t, isBlacklisted)
}
