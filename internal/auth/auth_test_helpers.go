package auth

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/utilities"
)

// GetAccessToken logs email in through the login handler and returns the issued token.
func GetAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	email string,
	password string,
) (string, error) {
	t.Helper()
	handler := NewLocalAuthHandler(db)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	token, ok := resp["token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("login Failed: no token in response: %s", rec.Body.String())
	}
	return token, nil
}
