package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// DueDateLayout is the only accepted due date format. Due dates are stored
// as text so the store's native ascending sort matches string order.
const DueDateLayout = "2006-01-02"

type Task struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Priority    string    `json:"priority" gorm:"not null"`
	DueDate     string    `json:"due_date" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null;default:'todo'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// PriorityRank orders priorities for sorting: High before Medium before Low,
// unknown values last.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// TaskPatch carries the fields of a partial update. Nil means the field was
// not present in the request and must be left untouched.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
}

// Insights is the derived aggregation over all current tasks. It is computed
// on demand, never persisted. The count maps omit values no task carries, and
// the zero state (no tasks at all) carries only TotalTasks and Summary.
type Insights struct {
	TotalTasks    int            `json:"total_tasks"`
	StatusCount   map[string]int `json:"status_count,omitempty"`
	PriorityCount map[string]int `json:"priority_count,omitempty"`
	DueSoonCount  *int           `json:"due_soon_count,omitempty"`
	Summary       string         `json:"summary"`
}
