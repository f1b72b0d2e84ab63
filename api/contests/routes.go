package contests

import (
	"github.com/contestreplay/replay-api/api/types"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers contest browsing routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", List(deps))                        // List all contest folders
	router.GET("/:name", Get(deps))                   // Contest detail with timeline
	router.GET("/:name/contacts", Contacts(deps))     // Contacts with playback positions
	router.GET("/:name/audio/:filename", Audio(deps)) // Serve one recording file
}
