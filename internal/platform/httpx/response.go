package httpx

import (
	"github.com/gin-gonic/gin"
)

// RespondWithData sends data directly without wrapping.
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	if data == nil {
		c.JSON(statusCode, gin.H{})
		return
	}
	c.JSON(statusCode, data)
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}

// RespondWithHealth sends a health check response, degraded if any
// dependency reports anything other than "up".
func RespondWithHealth(c *gin.Context, version string, services map[string]string) {
	status := "healthy"
	for _, serviceStatus := range services {
		if serviceStatus != "up" {
			status = "degraded"
			break
		}
	}

	c.JSON(200, HealthResponse{
		Status:   status,
		Version:  version,
		Services: services,
	})
}
