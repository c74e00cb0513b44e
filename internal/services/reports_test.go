package services

import (
	"context"
	"testing"

	"ascenda-backend-go/internal/models"
)

func TestDashboardReport(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	created, _ := r.Assignments.Assign(ctx, 1, []int64{1, 2}, nil, nil, "")
	_, _ = r.Assignments.SetStatus(ctx, created[0].ID, models.AssignmentCompleted, nil)
	_, _ = r.Tasks.Create(ctx, models.Task{Title: "open", InternID: 1})
	_, _ = r.Vacations.Submit(ctx, 1, "2026-09-07", "2026-09-11", nil)

	report, err := r.Reports.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if report.TotalInterns != 2 || report.ActiveInterns != 2 {
		t.Fatalf("intern counts: %+v", report)
	}
	if len(report.Leaderboard) == 0 || report.Leaderboard[0].Points < report.Leaderboard[len(report.Leaderboard)-1].Points {
		t.Fatalf("leaderboard not descending: %v", report.Leaderboard)
	}

	var git CourseCompletion
	for _, completion := range report.CourseCompletion {
		if completion.Title == "Git Fundamentals" {
			git = completion
		}
	}
	if git.Enrolled != 2 || git.Completed != 1 || git.Rate != 0.5 {
		t.Fatalf("completion rate: %+v", git)
	}

	if report.VacationSummary[models.VacationPending] != 1 {
		t.Fatalf("vacation summary: %v", report.VacationSummary)
	}
	if report.TaskBacklog[models.TaskPending] != 1 {
		t.Fatalf("task backlog: %v", report.TaskBacklog)
	}
}

func TestInternReport(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	_, _ = r.Assignments.Assign(ctx, 2, []int64{1}, nil, nil, "")
	_, _ = r.Tasks.Create(ctx, models.Task{Title: "read docs", InternID: 1})

	report, err := r.Reports.ForIntern(ctx, 1)
	if err != nil {
		t.Fatalf("ForIntern: %v", err)
	}
	if report.Intern.ID != 1 {
		t.Fatalf("wrong intern: %+v", report.Intern)
	}
	if len(report.Assignments) != 1 || len(report.Tasks) != 1 {
		t.Fatalf("report slices: %d assignments, %d tasks", len(report.Assignments), len(report.Tasks))
	}

	if _, err := r.Reports.ForIntern(ctx, 404); err == nil {
		t.Fatal("unknown intern accepted")
	}
}
