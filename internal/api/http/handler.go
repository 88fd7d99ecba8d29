package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"gridclaim/internal/room"
)

// wantsJSON picks JSON responses for API clients; browsers get redirects.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// @Summary List rooms
// @Description Returns every room, oldest first
// @Tags Room
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rm.ListRooms()})
	}
}

// @Summary Room detail
// @Description Returns the room and its scoreboard, or redirects to the listing if it does not exist
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} RoomResponse
// @Router /rooms/{roomId} [get]
func RoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		v, ok := rm.GetRoom(roomID)
		if !ok {
			c.Redirect(http.StatusFound, "/")
			return
		}
		rank, err := rm.Rank(roomID)
		if err != nil {
			// Deleted between the two reads.
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.JSON(http.StatusOK, RoomResponse{Room: v, Rank: rank})
	}
}

// @Summary Create room
// @Description Registers an empty room. Browsers are redirected to the room on success and to the listing otherwise.
// @Tags Room
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body CreateRoomRequest true "Room id"
// @Success 201 {object} map[string]interface{}
// @Router /create-room [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		_ = c.ShouldBind(&req) // a bad body leaves RoomID empty, which CreateRoom rejects

		v, err := rm.CreateRoom(req.RoomID)
		if !wantsJSON(c) {
			if err != nil {
				c.Redirect(http.StatusFound, "/")
				return
			}
			c.Redirect(http.StatusFound, "/rooms/"+url.PathEscape(v.ID))
			return
		}

		switch {
		case err == nil:
			c.JSON(http.StatusCreated, gin.H{"room": v})
		case errors.Is(err, room.ErrRoomAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
	}
}

// @Summary Delete room
// @Description Removes a room with no players or a finished game. Browsers are always redirected to the listing.
// @Tags Room
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body DeleteRoomRequest true "Room id"
// @Success 200 {object} map[string]interface{}
// @Router /delete-room [post]
func DeleteRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteRoomRequest
		_ = c.ShouldBind(&req)

		err := rm.DeleteRoom(req.RoomID)
		if !wantsJSON(c) {
			c.Redirect(http.StatusFound, "/")
			return
		}

		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"deleted": req.RoomID})
		case errors.Is(err, room.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, room.ErrRoomInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
	}
}
