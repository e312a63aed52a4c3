package middleware

import (
	"github.com/gin-gonic/gin"

	"twitch-giveaway-backend/internal/common/errors"
	authservice "twitch-giveaway-backend/internal/features/auth/service"
)

// SessionCookie carries the session id issued at login.
const SessionCookie = "session_id"

const contextKeyChannel = "channel"

// RequireSession resolves the session cookie and stores the channel identity
// in the request context. Requests without a valid session are rejected.
func RequireSession(auth *authservice.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			SendError(c, errors.NewUnauthorizedError("authentication required"))
			return
		}

		session, err := auth.Resolve(c.Request.Context(), id)
		if err != nil {
			SendError(c, err)
			return
		}

		c.Set(contextKeyChannel, session.Channel)
		c.Next()
	}
}

// Channel returns the channel identity resolved by RequireSession.
func Channel(c *gin.Context) string {
	if v, exists := c.Get(contextKeyChannel); exists {
		if channel, ok := v.(string); ok {
			return channel
		}
	}
	return ""
}
