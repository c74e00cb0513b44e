package services

import (
	"context"
	"testing"
	"time"

	"ascenda-backend-go/internal/models"
)

func strptr(s string) *string { return &s }

func TestSweepOverdue(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	_, err := r.Tasks.Create(ctx, models.Task{Title: "late", InternID: 1, DueDate: strptr("2026-08-01")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, _ = r.Tasks.Create(ctx, models.Task{Title: "future", InternID: 1, DueDate: strptr("2026-12-31")})
	_, _ = r.Tasks.Create(ctx, models.Task{Title: "no due date", InternID: 2})
	done, _ := r.Tasks.Create(ctx, models.Task{Title: "done late", InternID: 1, DueDate: strptr("2026-08-01")})
	_, _ = r.Tasks.Update(ctx, done.ID, map[string]any{"status": models.TaskCompleted})

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	count, err := r.Tasks.SweepOverdue(ctx, now)
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if count != 1 {
		t.Fatalf("flagged %d tasks, want 1", count)
	}

	tasks, _ := r.Tasks.ListByIntern(ctx, 1)
	byTitle := map[string]string{}
	for _, task := range tasks {
		byTitle[task.Title] = task.Status
	}
	if byTitle["late"] != models.TaskOverdue {
		t.Fatalf("late task status = %s", byTitle["late"])
	}
	if byTitle["future"] != models.TaskPending {
		t.Fatalf("future task status = %s", byTitle["future"])
	}
	if byTitle["done late"] != models.TaskCompleted {
		t.Fatalf("completed task re-flagged: %s", byTitle["done late"])
	}

	// A second sweep finds nothing new.
	count, _ = r.Tasks.SweepOverdue(ctx, now)
	if count != 0 {
		t.Fatalf("second sweep flagged %d", count)
	}
}

func TestTaskValidation(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Tasks.Create(ctx, models.Task{Title: " "}); err == nil {
		t.Fatal("blank title accepted")
	}
	if _, err := r.Tasks.Create(ctx, models.Task{Title: "x", Status: "odd"}); err == nil {
		t.Fatal("unknown status accepted")
	}

	task, err := r.Tasks.Create(ctx, models.Task{Title: "x", InternID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Status != models.TaskPending {
		t.Fatalf("default status = %s", task.Status)
	}
	if _, err := r.Tasks.Update(ctx, task.ID, map[string]any{"status": "odd"}); err == nil {
		t.Fatal("unknown status accepted on update")
	}
}
