package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health service
func Health(c *gin.Context) {
	// swagger:route GET /health health
	//
	// Service health
	//
	// Show service health status
	//
	// responses:
	//   200:
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
