package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/model"
	"github.com/HarishP23/OneStop/internal/utilities"
	"github.com/HarishP23/OneStop/internal/validation"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	Configure(Settings{SecretKey: "auth-test-secret", TokenTTL: time.Hour})

	if err := validation.Register(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register validators: %v\n", err)
		os.Exit(1)
	}

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
	os.Exit(code)
}

// Helper: validate token in response and return claims.
func assertValidAccessToken(t *testing.T, resp map[string]interface{}) *jwt.RegisteredClaims {
	t.Helper()
	tokenStr, ok := resp["token"].(string)
	require.True(t, ok, "token not a string")
	token, err := ValidatedToken(tokenStr)
	require.NoError(t, err)
	assert.True(t, token.Valid)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok, "claims type mismatch")
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.Subject, "token subject empty")
	return claims
}

func registerPayload(email, role string) map[string]string {
	return map[string]string{
		"fullName":    "Test Person",
		"email":       email,
		"password":    "password123",
		"phoneNumber": "0811111111",
		"role":        role,
	}
}

func TestRegisterStudent(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	rec, resp, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/register", http.MethodPost, registerPayload("New.Student@Example.com", "student"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "User successfully created", resp["message"])

	var user model.User
	require.NoError(t, testDB.Where("email = ?", "new.student@example.com").First(&user).Error)
	assert.Equal(t, model.RoleStudent, user.Role)
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, utilities.VerifyPassword("password123", user.Password))
}

func TestRegisterRecruiterAlias(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	rec, _, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/register", http.MethodPost, registerPayload("alias.recruiter@example.com", "recruitor"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var user model.User
	require.NoError(t, testDB.Where("email = ?", "alias.recruiter@example.com").First(&user).Error)
	assert.Equal(t, model.RoleRecruiter, user.Role)
}

func TestRegisterMentorGoesToMentorTable(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	rec, _, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/register", http.MethodPost, registerPayload("new.mentor@example.com", "mentor"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var mentor model.Mentor
	require.NoError(t, testDB.Where("email = ?", "new.mentor@example.com").First(&mentor).Error)
	assert.Equal(t, model.RoleMentor, mentor.Role)

	var count int64
	require.NoError(t, testDB.Model(&model.User{}).Where("email = ?", "new.mentor@example.com").Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterPasswordTooShort(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := registerPayload("short.pwd@example.com", "student")
	payload["password"] = "1234567"
	rec, resp, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/register", http.MethodPost, payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 8 characters", resp["message"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	for _, email := range []string{database.TestStudent1.Email, "MENTOR@example.com"} {
		rec, resp, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/register", http.MethodPost, registerPayload(email, "student"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code, email)
		assert.Equal(t, "User already exists", resp["message"], email)
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	rec, resp, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/register", http.MethodPost, registerPayload("admin.wannabe@example.com", "admin"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["message"], "role")
}

func TestRegisterMissingFields(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	rec, resp, err := utilities.SimulateAPICall(handler.LocalRegisterHandler, "/register", http.MethodPost, map[string]string{
		"email": "missing@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	msg, _ := resp["message"].(string)
	assert.Contains(t, msg, "fullName")
	assert.Contains(t, msg, "password")
}

func TestLoginStudentSuccess(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    database.TestStudent1.Email,
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, model.RoleStudent, resp["role"])

	claims := assertValidAccessToken(t, resp)
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, data["id"], claims.Subject)
	assert.NotContains(t, data, "password")
}

func TestLoginMentorSuccess(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    "Mentor@Example.com",
		"password": database.TestSeedPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, model.RoleMentor, resp["role"])

	claims := assertValidAccessToken(t, resp)
	assert.Equal(t, database.TestMentor.ID.String(), claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    database.TestStudent1.Email,
		"password": "WrongPass999!",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email or password is incorrect", resp["message"])
}

func TestLoginUserNotFound(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"email":    "non_existent_user@example.com",
		"password": "SomePassword1!",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Email or password is incorrect", resp["message"])
}

func TestLoginMissingFields(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/login", http.MethodPost, map[string]string{
		"email": database.TestStudent1.Email,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email or password is not provided", resp["message"])
}

func TestExpiredTokenIsRejected(t *testing.T) {
	token, err := GenerateTokenWithDuration(database.TestStudent1.ID, -time.Minute, JwtIssuer)
	require.NoError(t, err)

	_, err = ValidatedToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenSignedWithOtherKeyIsRejected(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    JwtIssuer,
		Subject:   database.TestStudent1.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := forged.SignedString([]byte("someone-else"))
	require.NoError(t, err)

	_, err = ValidatedToken(signed)
	assert.Error(t, err)
}
