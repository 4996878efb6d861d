package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kumar-97/kukkuta-Kendra/pkg/version"
)

// Health reports liveness and the running version
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.Get(),
	})
}
