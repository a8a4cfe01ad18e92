package middleware

import "github.com/gin-gonic/gin"

// actorHeader names the header the excluded auth layer forwards the acting
// user's ID in. The engine only uses it for audit fields.
const actorHeader = "X-Actor-ID"

// defaultActor is recorded when no acting user is forwarded.
const defaultActor = "api"

// GetActorID retrieves the acting user's ID for audit purposes.
func GetActorID(c *gin.Context) string {
	if actor := c.GetHeader(actorHeader); actor != "" {
		return actor
	}
	return defaultActor
}
