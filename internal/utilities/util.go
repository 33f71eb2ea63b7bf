// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/HarishP23/OneStop/internal/model"
)

// ErrorResponse is the body of every non-2xx response.
// Error carries the underlying error text when there is one.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractAccount extracts the authenticated account from Gin context.
// It does not abort the request; it returns an error when missing or invalid.
func ExtractAccount(c *gin.Context) (model.Account, error) {
	a, _ := c.Get("user")
	if a == nil {
		return model.Account{}, errors.New("User information not provided")
	}

	account, ok := a.(model.Account)
	if !ok {
		return model.Account{}, errors.New("Failed to assert type")
	}
	return account, nil
}
