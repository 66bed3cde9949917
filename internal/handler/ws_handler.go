package handler

import (
	"revu/internal/middleware"
	"revu/internal/ws"

	"github.com/gin-gonic/gin"
)

// NotificationStream upgrades to a WebSocket that receives the user's
// notifications as they are created. Runs behind session auth.
func NotificationStream(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws.ServeUser(c, hub, middleware.GetUserID(c))
	}
}
