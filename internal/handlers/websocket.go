package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"github.com/vikashchaurasiya2005/cab-booking-portal/pkg/utils"
)

// WebSocketHandler upgrades real-time connections. The credential is
// optional at handshake time: a valid vendor token joins the private and
// broadcast channels, anything else leaves the session connected but
// channel-less. The connection itself is never rejected for a bad token.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vendorID uint
		subscribed := false

		if tokenString := c.Query("token"); tokenString != "" {
			if token, err := utils.ValidateToken(tokenString); err == nil && token.Valid {
				if claims, ok := token.Claims.(jwt.MapClaims); ok {
					if v, ok := claims["vendorId"].(float64); ok {
						vendorID = uint(v)
						subscribed = true
					}
				}
			}
		}

		services.HandleWebSocket(hub, c.Writer, c.Request, vendorID, subscribed)
	}
}
