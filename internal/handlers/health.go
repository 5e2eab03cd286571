package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type connectionCounter interface {
	ConnectedClients() int
}

type HealthHandler struct {
	hub connectionCounter
}

func NewHealthHandler(hub connectionCounter) *HealthHandler {
	return &HealthHandler{hub: hub}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": h.hub.ConnectedClients()})
}
