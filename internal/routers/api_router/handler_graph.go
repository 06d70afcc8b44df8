package api_router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ForkFiesta/note-graph-service/internal/app"
	"github.com/ForkFiesta/note-graph-service/internal/dto"
	"github.com/ForkFiesta/note-graph-service/internal/middleware"
	pkgapp "github.com/ForkFiesta/note-graph-service/pkg/app"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
	apperrors "github.com/ForkFiesta/note-graph-service/pkg/errors"
)

// GraphHandler link query API route handler
type GraphHandler struct {
	*Handler
}

// NewGraphHandler creates a GraphHandler instance
func NewGraphHandler(a *app.App) *GraphHandler {
	return &GraphHandler{Handler: NewHandler(a)}
}

// Backlinks lists the notes linking to a title
func (h *GraphHandler) Backlinks(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkQueryRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("GraphHandler.Backlinks.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	notes, err := h.App.GraphService.Backlinks(ctx, params)
	if err != nil {
		h.logError(ctx, "GraphHandler.Backlinks", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(notes))
}

// Outlinks lists the outbound links of a note in order of appearance
func (h *GraphHandler) Outlinks(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkQueryRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("GraphHandler.Outlinks.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	links, err := h.App.GraphService.Outlinks(ctx, params)
	if err != nil {
		h.logError(ctx, "GraphHandler.Outlinks", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(links))
}

// Dangling lists every link occurrence whose target is not a note
func (h *GraphHandler) Dangling(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	links := h.App.GraphService.Dangling(c.Request.Context())
	response.ToResponse(code.Success.Clone().WithData(links))
}

// Resolve reports whether a link target resolves to an existing note
func (h *GraphHandler) Resolve(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ResolveRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("GraphHandler.Resolve.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	result := h.App.GraphService.Resolve(c.Request.Context(), params)
	response.ToResponse(code.Success.Clone().WithData(result))
}

// Stats summarizes the current graph
func (h *GraphHandler) Stats(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	stats := h.App.GraphService.Stats(c.Request.Context())
	response.ToResponse(code.Success.Clone().WithData(stats))
}

// logError logs a handler error together with its trace ID
func (h *GraphHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
