package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"abeg-fix/models"

	"github.com/gin-gonic/gin"
)

const accountKey = "account"

// Authenticator resolves a bearer token to the account it names.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Account, error)
}

func abort(c *gin.Context, status int, resp models.ErrorResponse) {
	c.AbortWithStatusJSON(status, resp)
}

// AuthMiddleware requires a valid Bearer token naming an existing account.
// Accounts that have not verified their email are turned away unless
// allowUnverified is set.
func AuthMiddleware(auth Authenticator, allowUnverified bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, models.ErrorResponse{
				Message: "No token, authorization denied",
			})
			return
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, models.ErrorResponse{
				Message: "Invalid authorization header format",
			})
			return
		}

		account, err := auth.Authenticate(c.Request.Context(), tokenParts[1])
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, models.ErrUnauthorized) {
				status = http.StatusInternalServerError
			}
			abort(c, status, models.ErrorResponse{
				Message: "Token is not valid",
				Error:   err.Error(),
			})
			return
		}

		if !account.IsEmailVerified && !allowUnverified {
			abort(c, http.StatusForbidden, models.ErrorResponse{
				Message:    "Please verify your email to continue",
				Unverified: true,
			})
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

// RequireRole admits only accounts holding one of roles. It must run after
// AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := CurrentAccount(c)
		if account == nil {
			abort(c, http.StatusUnauthorized, models.ErrorResponse{Message: "Not authorized"})
			return
		}
		if !slices.Contains(roles, account.Role()) {
			abort(c, http.StatusForbidden, models.ErrorResponse{
				Message: "User role " + string(account.Role()) + " is not authorized to access this route",
			})
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the account stored by AuthMiddleware, or nil.
func CurrentAccount(c *gin.Context) *models.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	account, _ := v.(*models.Account)
	return account
}
