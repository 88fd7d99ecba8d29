package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"gridclaim/internal/api/ws"
	"gridclaim/internal/config"
	"gridclaim/internal/room"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.GameConfig, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	// WebSocket for room events
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.GET("/", ListRoomsHandler(rm))
	r.GET("/rooms/:roomId", RoomHandler(rm))
	r.POST("/create-room", CreateRoomHandler(rm))
	r.POST("/delete-room", DeleteRoomHandler(rm))

	// --- CONFIG ENDPOINTS ---
	ch := NewConfigHandler(rm, cfg, hub)
	r.GET("/api/config", ch.GetGameConfigHandler)
	r.GET("/health", ch.HealthHandler)

	return r
}
