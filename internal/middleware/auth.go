package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"servic/internal/domain"
	"servic/internal/pkg/jwt"
	"servic/internal/pkg/response"
)

const (
	ctxUserID       = "user_id"
	ctxEmail        = "email"
	ctxName         = "name"
	ctxRole         = "role"
	ctxSessionError = "session_error"
)

// Session decodes the session token, if any, into the request context.
// It reads "Authorization: Bearer <jwt>" first and falls back to the session
// cookie. Requests without a valid token continue anonymously.
func Session(tokens *jwt.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := tokenFromRequest(c, cookieName)
		if token != "" {
			claims, err := tokens.ValidateToken(token)
			if err != nil {
				problem = "INVALID_TOKEN"
			} else {
				c.Set(ctxUserID, claims.UserID)
				c.Set(ctxEmail, claims.Email)
				c.Set(ctxName, claims.Name)
				c.Set(ctxRole, claims.Role)
			}
		}
		if problem != "" {
			c.Set(ctxSessionError, problem)
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, cookieName string) (token, problem string) {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "INVALID_AUTH_FORMAT"
		}
		return strings.TrimSpace(parts[1]), ""
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return v, ""
		}
	}
	return "", ""
}

// RequireAuth rejects requests that Session could not attach an identity to.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64(ctxUserID) != 0 {
			c.Next()
			return
		}

		switch c.GetString(ctxSessionError) {
		case "INVALID_TOKEN":
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Session is invalid or expired")
		case "INVALID_AUTH_FORMAT":
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be Bearer <token>")
		default:
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		}
		c.Abort()
	}
}

// CurrentActor returns the identity attached by Session.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	id := c.GetInt64(ctxUserID)
	if id == 0 {
		return domain.Actor{}, false
	}
	return domain.Actor{
		UserID: id,
		Email:  c.GetString(ctxEmail),
		Name:   c.GetString(ctxName),
		Role:   domain.UserRole(c.GetString(ctxRole)),
	}, true
}
