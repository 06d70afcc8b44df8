package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfoWithConfig stores app identity in the request context.
func AppInfoWithConfig(name, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)

		c.Next()
	}
}
