package utilities

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>" header
func ExtractBearerToken(c *gin.Context) (string, error) {
	const bearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(bearerSchema) || !strings.EqualFold(authHeader[:len(bearerSchema)], bearerSchema) {
		return "", errors.New("Invalid authorization header")
	}

	token := strings.TrimSpace(authHeader[len(bearerSchema):])
	if token == "" {
		return "", errors.New("Invalid authorization header")
	}
	return token, nil
}
