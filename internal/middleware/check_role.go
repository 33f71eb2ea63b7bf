package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarishP23/OneStop/internal/utilities"
)

// CheckRole will protect endpoint from user that is not a specific roles
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		account, err := utilities.ExtractAccount(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: err.Error(),
			})
			return
		}

		if !utilities.Contains(roles, account.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Message: "User doesn't have permission to access",
			})
			return
		}
		ctx.Next()
	}
}
