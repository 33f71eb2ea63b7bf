package auth

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/HarishP23/OneStop/internal/logger"
)

// JwtIssuer is the issuer claim of every token this server signs
const JwtIssuer = "OneStop"

const devSecretKey = "onestop-dev-secret"

// Settings configures token signing and the auth log
type Settings struct {
	SecretKey   string
	TokenTTL    time.Duration
	AuthLogFile bool
}

var (
	settingsMu sync.RWMutex
	secretKey  = os.Getenv("SECRET_KEY")
	tokenTTL   = time.Hour
)

// Configure replaces the signing key, token lifetime and auth log switch.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	secretKey = s.SecretKey
	if s.TokenTTL > 0 {
		tokenTTL = s.TokenTTL
	}
	authLogEnabled = s.AuthLogFile
}

func signingKey() []byte {
	settingsMu.RLock()
	key := secretKey
	settingsMu.RUnlock()
	if key == "" {
		logger.Warn("SECRET_KEY is not set, using the development signing key")
		key = devSecretKey
	}
	return []byte(key)
}

// GenerateStandardToken signs an access token for id with the configured lifetime
func GenerateStandardToken(id uuid.UUID) (string, error) {
	settingsMu.RLock()
	ttl := tokenTTL
	settingsMu.RUnlock()
	return GenerateTokenWithDuration(id, ttl, JwtIssuer)
}

// GenerateTokenWithDuration signs a token for id that expires after d
func GenerateTokenWithDuration(id uuid.UUID, d time.Duration, issuer string) (string, error) {
	now := time.Now()
	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signedToken, err := generatedAccessToken.SignedString(signingKey())
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %w", err)
	}
	return signedToken, nil
}

// ValidatedToken parses an HS256 token into RegisteredClaims and verifies its signature and expiry
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, errors.New("Invalid token")
		}
		return signingKey(), nil
	})
}
