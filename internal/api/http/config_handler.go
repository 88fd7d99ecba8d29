package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gridclaim/internal/api/ws"
	"gridclaim/internal/config"
	"gridclaim/internal/room"
	"gridclaim/internal/version"
)

type ConfigHandler struct {
	rm  *room.Manager
	cfg config.GameConfig
	hub *ws.Hub
}

func NewConfigHandler(rm *room.Manager, cfg config.GameConfig, hub *ws.Hub) *ConfigHandler {
	return &ConfigHandler{
		rm:  rm,
		cfg: cfg,
		hub: hub,
	}
}

// GetGameConfigHandler returns the room layout clients should render
// @Summary Get game settings
// @Description Returns the palette, grid size and room capacity
// @Tags Config
// @Produce json
// @Success 200 {object} GameConfigResponse
// @Router /api/config [get]
func (h *ConfigHandler) GetGameConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, GameConfigResponse{
		Palette:          h.rm.Palette(),
		GridCells:        h.cfg.GridCells,
		MaxPlayers:       h.rm.MaxPlayers(),
		TrustClientColor: h.cfg.TrustClientColor,
	})
}

// HealthHandler reports liveness and build info
// @Summary Health check
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *ConfigHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"version":     version.String(),
		"rooms":       len(h.rm.ListRooms()),
		"connections": h.hub.Len(),
	})
}
