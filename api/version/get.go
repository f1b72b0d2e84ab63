package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version information, set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Contest Replay API",
			"version":     Version,
			"commit":      GitCommit,
			"description": "API for replaying contest audio against Cabrillo logs",
			"status":      "running",
		})
	}
}
