package middleware

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/iamasit07/vier-gewinnt/pkg/auth"
	"github.com/iamasit07/vier-gewinnt/pkg/httputil"
	"github.com/iamasit07/vier-gewinnt/pkg/uid"
)

const (
	sessionIDKey  = "session_id"
	newSessionKey = "new_session"
)

// SessionMiddleware makes sure every request belongs to a player session.
// A request without a valid token gets a fresh session id and a cookie for it.
func SessionMiddleware(tokens *auth.TokenIssuer, isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, err := httputil.GetTokenFromRequest(c.Request); err == nil {
			claims, err := tokens.ValidateSessionToken(tokenString)
			if err == nil && uid.ValidSessionID(claims.SessionID) {
				c.Set(sessionIDKey, claims.SessionID)
				c.Next()
				return
			}
			log.Debug("discarding session token", "err", err)
			if _, err := c.Request.Cookie(httputil.SessionCookieName); err == nil {
				// expire the rejected cookie; a replacement follows below
				httputil.ClearSessionCookie(c.Writer)
			}
		}

		sessionID := uid.GenerateSessionID()
		token, err := tokens.GenerateSessionToken(sessionID)
		if err != nil {
			log.Error("signing session token", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		httputil.SetSessionCookie(c.Writer, token, tokens.TTL(), isProduction)
		c.Set(sessionIDKey, sessionID)
		c.Set(newSessionKey, true)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// IsNewSession reports whether the session was created by this request.
func IsNewSession(c *gin.Context) bool {
	return c.GetBool(newSessionKey)
}
