package api_router

import (
	"github.com/gin-gonic/gin"

	"github.com/ForkFiesta/note-graph-service/internal/app"
	pkgapp "github.com/ForkFiesta/note-graph-service/pkg/app"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
)

// VersionHandler version API route handler
type VersionHandler struct {
	*Handler
}

// NewVersionHandler creates a VersionHandler instance
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{Handler: NewHandler(a)}
}

// ServerVersion returns the build version information
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.Clone().WithData(h.App.Version()))
}
