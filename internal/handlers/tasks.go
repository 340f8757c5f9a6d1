package handlers

import (
	"errors"
	"net/http"

	"task-tracker/internal/models"
	"task-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	required := []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"priority", input.Priority},
		{"due_date", input.DueDate},
	}
	for _, field := range required {
		if field.value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: " + field.name})
			return
		}
	}

	if !models.ValidPriority(input.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be Low, Medium, or High"})
		return
	}

	id, err := h.taskService.CreateTask(h.db, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task_id": id.String(),
	})
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	filter := services.TaskFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	sortBy := c.Query("sort_by")

	tasks, err := h.taskService.GetTasks(h.db, filter, sortBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Existence is checked before the submitted values, so an unknown id is
	// a 404 even when the body also carries a bad enum value.
	if _, err := h.taskService.GetTaskByID(h.db, id); err != nil {
		handleTaskError(c, err)
		return
	}

	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be todo, in_progress, or done"})
		return
	}
	if patch.Priority != nil && !models.ValidPriority(*patch.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be Low, Medium, or High"})
		return
	}

	result, err := h.taskService.UpdateTask(h.db, id, patch)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	if result.Changed {
		c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "No changes made"})
	}
}

func handleTaskError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
