// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController reports process liveness and database reachability.
type HealthController struct {
	pingDB func() bool
}

// NewHealthController creates a new health controller instance.
func NewHealthController(pingDB func() bool) *HealthController {
	return &HealthController{pingDB: pingDB}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	database := "disconnected"
	if h.pingDB != nil && h.pingDB() {
		database = "connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
