package api_router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ForkFiesta/note-graph-service/internal/app"
	pkgapp "github.com/ForkFiesta/note-graph-service/pkg/app"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
)

// HealthHandler health check handler
type HealthHandler struct {
	*Handler
}

// NewHealthHandler creates a HealthHandler instance
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse health check response
type HealthResponse struct {
	Status   string  `json:"status"`   // "healthy" or "unhealthy"
	Version  string  `json:"version"`  // service version
	Uptime   float64 `json:"uptime"`   // uptime in seconds
	Database string  `json:"database"` // "connected" or "error"
	Notes    int     `json:"notes"`    // notes currently in the graph
}

// Check reports service health, including database connectivity
func (h *HealthHandler) Check(c *gin.Context) {
	response := HealthResponse{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   time.Since(h.App.StartTime).Seconds(),
		Database: "connected",
		Notes:    h.App.Graph.Len(),
	}

	if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
		response.Status = "unhealthy"
		response.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.Clone().WithData(response))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.Clone().WithData(response))
}
