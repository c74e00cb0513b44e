package services

import (
	"context"

	"ascenda-backend-go/internal/models"
)

type ReportService struct {
	interns     *InternService
	courses     *CourseService
	assignments *AssignmentService
	tasks       *TaskService
	vacations   *VacationService
}

func NewReportService(interns *InternService, courses *CourseService, assignments *AssignmentService, tasks *TaskService, vacations *VacationService) *ReportService {
	return &ReportService{
		interns:     interns,
		courses:     courses,
		assignments: assignments,
		tasks:       tasks,
		vacations:   vacations,
	}
}

type CourseCompletion struct {
	CourseID  int64   `json:"course_id"`
	Title     string  `json:"title"`
	Enrolled  int     `json:"enrolled"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"`
}

type DashboardReport struct {
	ActiveInterns    int                `json:"active_interns"`
	TotalInterns     int                `json:"total_interns"`
	Leaderboard      []models.Intern    `json:"leaderboard"`
	CourseCompletion []CourseCompletion `json:"course_completion"`
	VacationSummary  map[string]int     `json:"vacation_summary"`
	TaskBacklog      map[string]int     `json:"task_backlog"`
}

// Dashboard aggregates the manager home view in one call.
func (s *ReportService) Dashboard(ctx context.Context) (DashboardReport, error) {
	report := DashboardReport{
		VacationSummary: map[string]int{},
		TaskBacklog:     map[string]int{},
	}

	interns, err := s.interns.List(ctx, "", 0)
	if err != nil {
		return DashboardReport{}, err
	}
	report.TotalInterns = len(interns)
	for _, intern := range interns {
		if intern.Status == models.InternActive {
			report.ActiveInterns++
		}
	}

	leaderboard, err := s.interns.Leaderboard(ctx, 5)
	if err != nil {
		return DashboardReport{}, err
	}
	report.Leaderboard = leaderboard

	courses, err := s.courses.List(ctx, CourseFilter{}, "title", 0)
	if err != nil {
		return DashboardReport{}, err
	}
	for _, course := range courses {
		completion := CourseCompletion{
			CourseID:  course.ID,
			Title:     course.Title,
			Enrolled:  course.EnrolledCount,
			Completed: course.CompletedCount,
		}
		if course.EnrolledCount > 0 {
			completion.Rate = float64(course.CompletedCount) / float64(course.EnrolledCount)
		}
		report.CourseCompletion = append(report.CourseCompletion, completion)
	}

	for _, status := range []string{models.VacationPending, models.VacationApproved, models.VacationRejected} {
		requests, err := s.vacations.ListByStatus(ctx, status)
		if err != nil {
			return DashboardReport{}, err
		}
		report.VacationSummary[status] = len(requests)
	}

	tasks, err := s.tasks.List(ctx, "", 0)
	if err != nil {
		return DashboardReport{}, err
	}
	for _, task := range tasks {
		report.TaskBacklog[task.Status]++
	}

	return report, nil
}

type InternReport struct {
	Intern      models.Intern             `json:"intern"`
	Assignments []models.CourseAssignment `json:"assignments"`
	Tasks       []models.Task             `json:"tasks"`
	Vacations   []models.VacationRequest  `json:"vacations"`
}

// ForIntern collects everything a mentor reviews in a one-on-one.
func (s *ReportService) ForIntern(ctx context.Context, internID int64) (InternReport, error) {
	intern, err := s.interns.ByID(ctx, internID)
	if err != nil {
		return InternReport{}, err
	}
	assignments, err := s.assignments.ListByIntern(ctx, internID)
	if err != nil {
		return InternReport{}, err
	}
	tasks, err := s.tasks.ListByIntern(ctx, internID)
	if err != nil {
		return InternReport{}, err
	}
	vacations, err := s.vacations.ListByIntern(ctx, internID)
	if err != nil {
		return InternReport{}, err
	}
	return InternReport{
		Intern:      intern,
		Assignments: assignments,
		Tasks:       tasks,
		Vacations:   vacations,
	}, nil
}
