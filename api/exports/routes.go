package exports

import (
	"github.com/contestreplay/replay-api/api/types"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers export management routes. Export creation is
// contest-scoped and registered by the caller under the contests group.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", ListExports(deps))             // List all exports
	router.GET("/:uuid", GetExport(deps))         // Get specific export
	router.GET("/:uuid/download", Download(deps)) // Download bundle ZIP
	router.DELETE("/:uuid", DeleteExport(deps))   // Delete export and files
}
