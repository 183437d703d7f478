package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cookiePrefix = "shop_"

	// CookieSessionID names the visitor's cart session cookie.
	CookieSessionID = cookiePrefix + "session-id"
	// CookieLanguage holds an explicit language choice from the site switcher.
	CookieLanguage = cookiePrefix + "lang"

	cookieMaxAge = 60 * 60 * 24 * 30

	// CtxSessionID is where the session id lives in the gin context.
	CtxSessionID = "sessionID"
)

// SessionID returns the visitor's session id set by EnsureSession.
func SessionID(c *gin.Context) string {
	return c.GetString(CtxSessionID)
}

// EnsureSession gives every visitor a random session id cookie. The cart
// snapshot is stored under that id.
func EnsureSession(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(CookieSessionID)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieSessionID, sid, cookieMaxAge, "/", "", secure, true)
		}
		c.Set(CtxSessionID, sid)
		c.Next()
	}
}
