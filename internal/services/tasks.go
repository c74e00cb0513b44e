package services

import (
	"context"
	"time"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

var taskStatuses = map[string]bool{
	models.TaskPending:    true,
	models.TaskInProgress: true,
	models.TaskCompleted:  true,
	models.TaskOverdue:    true,
}

type TaskService struct {
	store *store.Store
}

func NewTaskService(s *store.Store) *TaskService {
	return &TaskService{store: s}
}

func (s *TaskService) List(ctx context.Context, sortSpec string, limit int) ([]models.Task, error) {
	recs, err := s.store.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Task](recs)
}

func (s *TaskService) ListByIntern(ctx context.Context, internID int64) ([]models.Task, error) {
	recs, err := s.store.Filter(ctx, store.Query{"intern_id": store.Eq(internID)}, "due_date", 0)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Task](recs)
}

func (s *TaskService) Create(ctx context.Context, task models.Task) (models.Task, error) {
	title, err := NormalizeRequired(task.Title, "Task title is required")
	if err != nil {
		return models.Task{}, ErrBadRequest(err.Error())
	}
	task.Title = title
	if task.Status == "" {
		task.Status = models.TaskPending
	}
	if !taskStatuses[task.Status] {
		return models.Task{}, ErrBadRequest("Unknown task status")
	}
	rec, err := store.Encode(task)
	if err != nil {
		return models.Task{}, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return models.Task{}, err
	}
	var out models.Task
	if err := store.Decode(created, &out); err != nil {
		return models.Task{}, err
	}
	return out, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, patch store.Record) (models.Task, error) {
	if status, ok := patch["status"].(string); ok && !taskStatuses[status] {
		return models.Task{}, ErrBadRequest("Unknown task status")
	}
	rec, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.Task{}, err
	}
	var out models.Task
	if err := store.Decode(rec, &out); err != nil {
		return models.Task{}, err
	}
	return out, nil
}

func (s *TaskService) Remove(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}

// SweepOverdue flags open tasks whose due date has passed. Returns how many
// tasks were flagged.
func (s *TaskService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.UTC().Format("2006-01-02")
	recs, err := s.store.Filter(ctx, store.Query{
		"status": store.OneOf(models.TaskPending, models.TaskInProgress),
		"due_date": store.Where(func(value any, _ store.Record) bool {
			due, ok := value.(string)
			return ok && due != "" && due < cutoff
		}),
	}, "", 0)
	if err != nil {
		return 0, err
	}
	tasks, err := store.DecodeAll[models.Task](recs)
	if err != nil {
		return 0, err
	}
	for i, task := range tasks {
		if _, err := s.store.Update(ctx, task.ID, store.Record{"status": models.TaskOverdue}); err != nil {
			return i, err
		}
	}
	return len(tasks), nil
}
