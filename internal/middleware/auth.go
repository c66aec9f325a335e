package middleware

import (
	goerrors "errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cashpoint/internal/models"
	"cashpoint/internal/repositories"
	"cashpoint/internal/services/auth"
	"cashpoint/internal/utils/response"
)

// ClaimsKey is the Locals key under which verified claims are stored.
const ClaimsKey = "claims"

// AuthMiddleware verifies the bearer token and confirms the account still
// exists before letting the request through.
func AuthMiddleware(authSvc auth.Service, accounts repositories.AccountRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return response.Unauthorized(c, "missing or malformed authorization header")
		}

		claims, err := authSvc.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return response.Unauthorized(c, "invalid or expired token")
		}

		if _, err := accounts.GetByID(claims.UserID); err != nil {
			if goerrors.Is(err, repositories.ErrAccountNotFound) {
				return response.Unauthorized(c, "account no longer exists")
			}
			return response.ServerError(c, "failed to verify account")
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// AdminRequired gates admin routes on the stored account flag, not the
// token claim, so a demoted admin is cut off without waiting for token
// expiry.
func AdminRequired(accounts repositories.AccountRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return response.Unauthorized(c, "authentication required")
		}
		account, err := accounts.GetByID(claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "account no longer exists")
		}
		if !account.IsAdmin {
			return response.Forbidden(c, "admin access required")
		}
		return c.Next()
	}
}

// Claims returns the verified claims set by AuthMiddleware, or nil.
func Claims(c *fiber.Ctx) *models.UserClaims {
	claims, _ := c.Locals(ClaimsKey).(*models.UserClaims)
	return claims
}
