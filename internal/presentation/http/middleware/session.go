package middleware

import "github.com/gin-gonic/gin"

// SessionIDHeader carries the visitor's opaque session token.
const SessionIDHeader = "X-Roulette-Session-ID"

// SessionID extracts the visitor session token from the request, checking
// the dedicated header first and falling back to a query parameter. An empty
// result means a new visitor.
func SessionID(c *gin.Context) string {
	if id := c.GetHeader(SessionIDHeader); id != "" {
		return id
	}
	return c.Query("sessionId")
}
