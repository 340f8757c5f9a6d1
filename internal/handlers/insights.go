package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *TaskHandler) GetInsights(c *gin.Context) {
	insights, err := h.taskService.GetInsights(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, insights)
}

// HealthCheck reports liveness only; it deliberately touches neither the
// store nor the cache.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
