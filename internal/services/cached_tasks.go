package services

import (
	"fmt"
	"time"

	"task-tracker/internal/cache"
	"task-tracker/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const insightsCacheKey = "insights"

// CachedTaskService decorates a TaskService with a Redis read-through cache
// for the list and insights reads. Every write invalidates the affected keys,
// so a stale read can only outlive a write by at most the cache round-trip.
// Cache failures are treated as misses; the store stays authoritative.
type CachedTaskService struct {
	taskService TaskService
	cache       *cache.RedisCache
	ttl         time.Duration
}

func NewCachedTaskService(taskService TaskService, cacheInstance *cache.RedisCache, ttl time.Duration) *CachedTaskService {
	return &CachedTaskService{
		taskService: taskService,
		cache:       cacheInstance,
		ttl:         ttl,
	}
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, input TaskInput) (uuid.UUID, error) {
	id, err := s.taskService.CreateTask(db, input)
	if err != nil {
		return id, err
	}
	s.invalidate()
	return id, nil
}

func (s *CachedTaskService) GetTasks(db *gorm.DB, filter TaskFilter, sortBy string) ([]models.Task, error) {
	cacheKey := listCacheKey(filter, sortBy)

	var cachedTasks []models.Task
	if err := s.cache.Get(cacheKey, &cachedTasks); err == nil {
		return cachedTasks, nil
	}

	tasks, err := s.taskService.GetTasks(db, filter, sortBy)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, tasks, s.ttl)
	return tasks, nil
}

func (s *CachedTaskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (models.Task, error) {
	return s.taskService.GetTaskByID(db, id)
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id uuid.UUID, patch models.TaskPatch) (UpdateResult, error) {
	result, err := s.taskService.UpdateTask(db, id, patch)
	if err != nil {
		return result, err
	}
	s.invalidate()
	return result, nil
}

func (s *CachedTaskService) GetInsights(db *gorm.DB) (models.Insights, error) {
	var cachedInsights models.Insights
	if err := s.cache.Get(insightsCacheKey, &cachedInsights); err == nil {
		return cachedInsights, nil
	}

	insights, err := s.taskService.GetInsights(db)
	if err != nil {
		return insights, err
	}

	s.cache.Set(insightsCacheKey, insights, s.ttl)
	return insights, nil
}

func (s *CachedTaskService) invalidate() {
	s.cache.DeletePattern("tasks:*")
	s.cache.Delete(insightsCacheKey)
}

func listCacheKey(filter TaskFilter, sortBy string) string {
	return fmt.Sprintf("tasks:%s:%s:%s", filter.Status, filter.Priority, sortBy)
}
