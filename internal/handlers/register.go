package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes attaches the task tracking surface to the router.
func RegisterRoutes(router *gin.Engine, taskHandler *TaskHandler) {
	router.GET("/health", HealthCheck)

	router.POST("/tasks", taskHandler.CreateTask)
	router.GET("/tasks", taskHandler.GetTasks)
	router.PATCH("/tasks/:id", taskHandler.UpdateTask)

	router.GET("/insights", taskHandler.GetInsights)
}
