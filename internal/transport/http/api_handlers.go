package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/multiroom-server/internal/core"
)

// APIHandlers exposes read-only snapshots of the relay state.
type APIHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewAPIHandlers creates the snapshot API handlers.
func NewAPIHandlers(hub *core.Hub, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{hub: hub, log: logger}
}

// RoomListResponse is the /api/rooms body.
type RoomListResponse struct {
	Rooms []string `json:"rooms"`
}

// UserListResponse is the /api/users body.
type UserListResponse struct {
	Users []string `json:"users"`
}

// ListRooms returns the room catalog in creation order.
// GET /api/rooms
func (h *APIHandlers) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, RoomListResponse{Rooms: h.hub.Rooms()})
}

// ListUsers returns the active display names.
// GET /api/users
func (h *APIHandlers) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, UserListResponse{Users: h.hub.Users()})
}
