package services

import (
	"context"
	"testing"

	"ascenda-backend-go/internal/models"
)

func TestVacationFlow(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	request, err := r.Vacations.Submit(ctx, 1, "2026-09-07", "2026-09-11", nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if request.Status != models.VacationPending {
		t.Fatalf("expected pending, got %s", request.Status)
	}

	// Every manager hears about the new request.
	managers, _ := r.Users.ByRole(ctx, models.RoleManager)
	notifications, _ := r.Notifications.ListForUser(ctx, managers[0].ID, true, 0)
	if len(notifications) != 1 || notifications[0].Type != "vacation_requested" {
		t.Fatalf("expected vacation_requested notification, got %v", notifications)
	}

	note := "enjoy"
	approved, err := r.Vacations.Approve(ctx, request.ID, &note, "Ana Ribeiro")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != models.VacationApproved || approved.DecidedAt == nil {
		t.Fatalf("approval not stamped: %+v", approved)
	}
	if approved.ManagerNote == nil || *approved.ManagerNote != "enjoy" {
		t.Fatalf("manager note lost: %+v", approved)
	}

	// The intern hears about the decision.
	intern, _ := r.Interns.ByID(ctx, 1)
	internNotes, _ := r.Notifications.ListForUser(ctx, intern.UserID, true, 0)
	if len(internNotes) != 1 || internNotes[0].Type != "vacation_approved" {
		t.Fatalf("expected vacation_approved notification, got %v", internNotes)
	}

	// Deciding twice is rejected.
	if _, err := r.Vacations.Reject(ctx, request.ID, nil, ""); err == nil {
		t.Fatal("second decision accepted")
	}
}

func TestVacationValidation(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Vacations.Submit(ctx, 404, "2026-09-07", "2026-09-11", nil); err == nil {
		t.Fatal("unknown intern accepted")
	}
	if _, err := r.Vacations.Submit(ctx, 1, "not-a-date", "2026-09-11", nil); err == nil {
		t.Fatal("bad start date accepted")
	}
	if _, err := r.Vacations.Submit(ctx, 1, "2026-09-11", "2026-09-07", nil); err == nil {
		t.Fatal("end before start accepted")
	}
	// Single-day requests are fine.
	if _, err := r.Vacations.Submit(ctx, 1, "2026-09-07", "2026-09-07", nil); err != nil {
		t.Fatalf("single-day request rejected: %v", err)
	}
}

func TestVacationListByStatus(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	first, _ := r.Vacations.Submit(ctx, 1, "2026-09-07", "2026-09-11", nil)
	_, _ = r.Vacations.Submit(ctx, 2, "2026-10-01", "2026-10-02", nil)
	_, _ = r.Vacations.Approve(ctx, first.ID, nil, "")

	pending, err := r.Vacations.ListByStatus(ctx, models.VacationPending)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(pending) != 1 || pending[0].InternID != 2 {
		t.Fatalf("unexpected pending list: %v", pending)
	}
}
