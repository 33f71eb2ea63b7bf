package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarishP23/OneStop/internal/auth"
	"github.com/HarishP23/OneStop/internal/utilities"
)

// JwtBlacklistCheck rejects tokens that were revoked by logout
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: err.Error(),
			})
			return
		}

		isBlacklisted, err := bl.IsBlacklisted(ctx.Request.Context(), tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Message: "Failed to validate token",
				Error:   err.Error(),
			})
			return
		}

		if isBlacklisted {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Token has been revoked",
			})
			return
		}

		ctx.Next()
	}
}
