package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

// Cookie names issued by the upstream social API and carried through by the
// web client. The backend never mints its own credentials; it only forwards
// these cookies on upstream calls.
const (
	SessionCookieName = "sessionId"
	UserCookieName    = "userId"
)

// SessionMiddleware requires both upstream cookies and exposes them to
// handlers via the gin context.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Session cookie missing")
			c.Abort()
			return
		}

		userID, err := c.Cookie(UserCookieName)
		if err != nil || userID == "" {
			utils.RespondError(c, http.StatusUnauthorized, "User cookie missing")
			c.Abort()
			return
		}

		c.Set("session_id", sessionID)
		c.Set("user_id", userID)
		c.Next()
	}
}
