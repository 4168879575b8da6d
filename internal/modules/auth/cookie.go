package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie writes the HTTP-only cookie carrying the session token.
type SessionCookie struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

func NewSessionCookie(name string, secure bool, sameSite string, maxAge time.Duration) SessionCookie {
	return SessionCookie{Name: name, Secure: secure, SameSite: parseSameSite(sameSite), MaxAge: maxAge}
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

func (sc SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(sc.SameSite)
	c.SetCookie(sc.Name, token, int(sc.MaxAge.Seconds()), "/", "", sc.Secure, true)
}

func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(sc.SameSite)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}
