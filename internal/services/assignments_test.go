package services

import (
	"context"
	"testing"

	"ascenda-backend-go/internal/models"
)

func TestAssignFansOutAndNotifies(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	created, err := r.Assignments.Assign(ctx, 1, []int64{1, 2}, nil, nil, "Ana Ribeiro")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(created))
	}
	for _, assignment := range created {
		if assignment.Status != models.AssignmentAssigned || assignment.Progress != 0 {
			t.Fatalf("bad initial state: %+v", assignment)
		}
		if assignment.AssignedDate == "" {
			t.Fatal("assigned_date not stamped")
		}
	}

	course, _ := r.Courses.ByID(ctx, 1)
	if course.EnrolledCount != 2 {
		t.Fatalf("enrolled_count = %d, want 2", course.EnrolledCount)
	}

	intern, _ := r.Interns.ByID(ctx, 1)
	notifications, err := r.Notifications.ListForUser(ctx, intern.UserID, true, 0)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Type != "course_assigned" {
		t.Fatalf("expected course_assigned notification, got %v", notifications)
	}
}

func TestAssignUnknownIntern(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Assignments.Assign(context.Background(), 1, []int64{404}, nil, nil, ""); err == nil {
		t.Fatal("expected error for unknown intern")
	}
}

func TestSetStatusStampsDates(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	created, err := r.Assignments.Assign(ctx, 1, []int64{1}, nil, nil, "")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	id := created[0].ID

	started, err := r.Assignments.SetStatus(ctx, id, models.AssignmentInProgress, nil)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if started.StartedDate == nil {
		t.Fatal("started_date not stamped")
	}
	firstStart := *started.StartedDate

	completed, err := r.Assignments.SetStatus(ctx, id, models.AssignmentCompleted, nil)
	if err != nil {
		t.Fatalf("SetStatus completed: %v", err)
	}
	if completed.CompletedDate == nil || completed.Progress != 100 {
		t.Fatalf("completion not stamped: %+v", completed)
	}

	course, _ := r.Courses.ByID(ctx, 1)
	if course.CompletedCount != 1 {
		t.Fatalf("completed_count = %d, want 1", course.CompletedCount)
	}

	// Reopening and restarting keeps the original started_date, and
	// re-completing does not double count.
	if _, err := r.Assignments.SetStatus(ctx, id, models.AssignmentAssigned, nil); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	restarted, err := r.Assignments.SetStatus(ctx, id, models.AssignmentInProgress, nil)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if restarted.StartedDate == nil || *restarted.StartedDate != firstStart {
		t.Fatalf("started_date rewritten: %v", restarted.StartedDate)
	}

	if _, err := r.Assignments.SetStatus(ctx, id, "bogus", nil); err == nil {
		t.Fatal("unknown status accepted")
	}
}

func TestSetProgressTransitions(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	created, _ := r.Assignments.Assign(ctx, 1, []int64{1}, nil, nil, "")
	id := created[0].ID

	inProgress, err := r.Assignments.SetProgress(ctx, id, 40)
	if err != nil {
		t.Fatalf("SetProgress: %v", err)
	}
	if inProgress.Status != models.AssignmentInProgress || inProgress.Progress != 40 {
		t.Fatalf("unexpected state: %+v", inProgress)
	}

	done, err := r.Assignments.SetProgress(ctx, id, 100)
	if err != nil {
		t.Fatalf("SetProgress 100: %v", err)
	}
	if done.Status != models.AssignmentCompleted {
		t.Fatalf("expected completed, got %s", done.Status)
	}

	if _, err := r.Assignments.SetProgress(ctx, id, 120); err == nil {
		t.Fatal("out-of-range progress accepted")
	}
}
