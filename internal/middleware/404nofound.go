package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ForkFiesta/note-graph-service/pkg/app"
	"github.com/ForkFiesta/note-graph-service/pkg/code"
)

// NoFound 404 handler
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
