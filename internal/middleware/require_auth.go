// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HarishP23/OneStop/internal/auth"
	"github.com/HarishP23/OneStop/internal/database"
	"github.com/HarishP23/OneStop/internal/utilities"
)

// RequireAuth validates the Bearer token in the Authorization header, loads the
// user or mentor it was issued to and stores both under "claims" and "user".
func RequireAuth(db *database.DBinstanceStruct) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: err.Error(),
			})
			return
		}

		token, err := auth.ValidatedToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Message: "Access token expired",
				})
				return
			}

			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Failed to validate token",
				Error:   err.Error(),
			})
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !token.Valid || !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Invalid access token",
			})
			return
		}

		if claims.Issuer != auth.JwtIssuer {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Invalid token issuer",
			})
			return
		}

		accountID, err := uuid.Parse(claims.Subject)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Message: "Invalid access token",
			})
			return
		}

		account, err := db.FindAccountByID(ctx.Request.Context(), accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Message: "User not exist",
				})
				return
			}

			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Message: "Failed to retrieve user data",
				Error:   err.Error(),
			})
			return
		}

		ctx.Set("claims", claims)
		ctx.Set("user", account)
		ctx.Next()
	}
}
