package services

import (
	"sort"
	"time"

	"task-tracker/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	SortByDueDate  = "due_date"
	SortByPriority = "priority"
)

// TaskInput is the record accepted by CreateTask. Required-field and enum
// validation happens at the HTTP boundary before the service is invoked.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

// TaskFilter narrows GetTasks by exact match. Empty fields do not filter.
// Both set means both must match.
type TaskFilter struct {
	Status   string
	Priority string
}

// UpdateResult reports whether a partial update changed any submitted field.
// updated_at refreshes either way.
type UpdateResult struct {
	Changed bool
}

type TaskService interface {
	CreateTask(db *gorm.DB, input TaskInput) (uuid.UUID, error)
	GetTasks(db *gorm.DB, filter TaskFilter, sortBy string) ([]models.Task, error)
	GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error)
	UpdateTask(db *gorm.DB, id uuid.UUID, patch models.TaskPatch) (UpdateResult, error)
	GetInsights(db *gorm.DB) (models.Insights, error)
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, input TaskInput) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = models.StatusTodo
	}

	task := models.Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := db.Create(&task).Error; err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *TaskServiceImpl) GetTasks(db *gorm.DB, filter TaskFilter, sortBy string) ([]models.Task, error) {
	query := db.Model(&models.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	// due_date is a text column, so the store's ascending order is the
	// documented lexicographic order. Priority rank order is not expressible
	// as a stable single-field sort, so it runs in memory after the fetch.
	if sortBy == SortByDueDate {
		query = query.Order("due_date ASC")
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	if sortBy == SortByPriority {
		sort.SliceStable(tasks, func(i, j int) bool {
			return models.PriorityRank(tasks[i].Priority) < models.PriorityRank(tasks[j].Priority)
		})
	}

	return tasks, nil
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id uuid.UUID, patch models.TaskPatch) (UpdateResult, error) {
	task, err := s.GetTaskByID(db, id)
	if err != nil {
		return UpdateResult{}, err
	}

	updates := map[string]interface{}{}
	changed := false

	apply := func(column string, submitted *string, current string) {
		if submitted == nil {
			return
		}
		updates[column] = *submitted
		if *submitted != current {
			changed = true
		}
	}
	apply("title", patch.Title, task.Title)
	apply("description", patch.Description, task.Description)
	apply("priority", patch.Priority, task.Priority)
	apply("due_date", patch.DueDate, task.DueDate)
	apply("status", patch.Status, task.Status)

	// updated_at refreshes even when the submitted values are a no-op.
	updates["updated_at"] = time.Now().UTC()

	if err := db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return UpdateResult{}, err
	}

	return UpdateResult{Changed: changed}, nil
}
