package services

import (
	"fmt"
	"sort"
	"time"

	"task-tracker/internal/models"

	"gorm.io/gorm"
)

const emptyInsightsSummary = "No tasks found. Add some tasks to get insights!"

const dueSoonWindow = 72 * time.Hour

func (s *TaskServiceImpl) GetInsights(db *gorm.DB) (models.Insights, error) {
	tasks, err := s.GetTasks(db, TaskFilter{}, "")
	if err != nil {
		return models.Insights{}, err
	}

	if len(tasks) == 0 {
		return models.Insights{TotalTasks: 0, Summary: emptyInsightsSummary}, nil
	}

	statusCount := map[string]int{}
	priorityCount := map[string]int{}
	for _, task := range tasks {
		statusCount[task.Status]++
		priorityCount[task.Priority]++
	}

	// The lower bound is the current instant, not midnight, so a task due
	// today can fall out of the window once the day has started. That matches
	// the historical behavior and is kept on purpose.
	now := time.Now().UTC()
	windowEnd := now.Add(dueSoonWindow)
	dueSoonCount := 0
	for _, task := range tasks {
		if task.Status == models.StatusDone || task.DueDate == "" {
			continue
		}
		dueDate, err := time.Parse(models.DueDateLayout, task.DueDate)
		if err != nil {
			continue
		}
		if !dueDate.Before(now) && !dueDate.After(windowEnd) {
			dueSoonCount++
		}
	}

	openTasks := statusCount[models.StatusTodo] + statusCount[models.StatusInProgress]
	topPriority := mostCommonPriority(priorityCount)

	var summary string
	if openTasks == 0 {
		summary = "Great job! You have no pending tasks."
	} else {
		summary = fmt.Sprintf("You have %d open tasks", openTasks)
		if topPriority != "" {
			summary += fmt.Sprintf(" - most are %s priority", topPriority)
		}
		if dueSoonCount > 0 {
			summary += fmt.Sprintf(" and %d are due soon", dueSoonCount)
		}
		summary += "."
	}

	return models.Insights{
		TotalTasks:    len(tasks),
		StatusCount:   statusCount,
		PriorityCount: priorityCount,
		DueSoonCount:  &dueSoonCount,
		Summary:       summary,
	}, nil
}

// mostCommonPriority picks the priority with the highest tally. Ties break
// deterministically: High before Medium before Low, unknown values last in
// lexicographic order.
func mostCommonPriority(priorityCount map[string]int) string {
	if len(priorityCount) == 0 {
		return ""
	}

	priorities := make([]string, 0, len(priorityCount))
	for p := range priorityCount {
		priorities = append(priorities, p)
	}
	sort.Slice(priorities, func(i, j int) bool {
		ri, rj := models.PriorityRank(priorities[i]), models.PriorityRank(priorities[j])
		if ri != rj {
			return ri < rj
		}
		return priorities[i] < priorities[j]
	})

	best := priorities[0]
	for _, p := range priorities[1:] {
		if priorityCount[p] > priorityCount[best] {
			best = p
		}
	}
	return best
}
