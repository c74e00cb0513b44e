package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

type AssignmentService struct {
	store         *store.Store
	courses       *CourseService
	interns       *InternService
	notifications *NotificationService
}

func NewAssignmentService(s *store.Store, courses *CourseService, interns *InternService, notifications *NotificationService) *AssignmentService {
	return &AssignmentService{store: s, courses: courses, interns: interns, notifications: notifications}
}

// Assign fans a course out to the given interns. Each assignment is an
// independent create with no rollback: a failure partway leaves the earlier
// assignments in place.
func (s *AssignmentService) Assign(ctx context.Context, courseID int64, internIDs []int64, dueDate, notes *string, actorName string) ([]models.CourseAssignment, error) {
	if len(internIDs) == 0 {
		return nil, ErrBadRequest("Select at least one intern")
	}
	course, err := s.courses.ByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	created := make([]models.CourseAssignment, 0, len(internIDs))
	for _, internID := range internIDs {
		intern, err := s.interns.ByID(ctx, internID)
		if err != nil {
			return created, err
		}
		assignment := models.CourseAssignment{
			CourseID:     courseID,
			InternID:     internID,
			Status:       models.AssignmentAssigned,
			Progress:     0,
			AssignedDate: time.Now().UTC().Format(time.RFC3339),
			DueDate:      dueDate,
			Notes:        notes,
		}
		rec, err := store.Encode(assignment)
		if err != nil {
			return created, err
		}
		createdRec, err := s.store.Create(ctx, rec)
		if err != nil {
			return created, err
		}
		if err := store.Decode(createdRec, &assignment); err != nil {
			return created, err
		}
		created = append(created, assignment)
		if err := s.courses.incrementCounter(ctx, courseID, "enrolled_count"); err != nil {
			return created, err
		}
		if intern.UserID != "" {
			_, _ = s.notifications.Notify(ctx, models.Notification{
				UserID:     intern.UserID,
				Type:       "course_assigned",
				Title:      fmt.Sprintf("New course: %s", course.Title),
				TargetKind: "course",
				TargetID:   strconv.FormatInt(courseID, 10),
				ActorName:  actorName,
			})
		}
	}
	return created, nil
}

func (s *AssignmentService) ByID(ctx context.Context, id int64) (models.CourseAssignment, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.CourseAssignment{}, ErrNotFound("Assignment not found")
	}
	var assignment models.CourseAssignment
	if err := store.Decode(rec, &assignment); err != nil {
		return models.CourseAssignment{}, err
	}
	return assignment, nil
}

func (s *AssignmentService) ListByIntern(ctx context.Context, internID int64) ([]models.CourseAssignment, error) {
	recs, err := s.store.Filter(ctx, store.Query{"intern_id": store.Eq(internID)}, "-assigned_date", 0)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.CourseAssignment](recs)
}

func (s *AssignmentService) ListByCourse(ctx context.Context, courseID int64) ([]models.CourseAssignment, error) {
	recs, err := s.store.Filter(ctx, store.Query{"course_id": store.Eq(courseID)}, "-assigned_date", 0)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.CourseAssignment](recs)
}

// SetStatus updates an assignment, stamping started_date the first time it
// moves to in_progress and completed_date on completion. Transitions are
// not otherwise constrained; a completed assignment can be reopened.
func (s *AssignmentService) SetStatus(ctx context.Context, id int64, status string, progress *int) (models.CourseAssignment, error) {
	current, err := s.ByID(ctx, id)
	if err != nil {
		return models.CourseAssignment{}, err
	}
	patch := store.Record{"status": status}
	if progress != nil {
		patch["progress"] = *progress
	}
	now := time.Now().UTC().Format(time.RFC3339)
	switch status {
	case models.AssignmentInProgress:
		if current.StartedDate == nil {
			patch["started_date"] = now
		}
	case models.AssignmentCompleted:
		if current.CompletedDate == nil {
			patch["completed_date"] = now
		}
		patch["progress"] = 100
	case models.AssignmentAssigned:
	default:
		return models.CourseAssignment{}, ErrBadRequest("Unknown assignment status")
	}
	rec, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.CourseAssignment{}, err
	}
	var updated models.CourseAssignment
	if err := store.Decode(rec, &updated); err != nil {
		return models.CourseAssignment{}, err
	}
	if status == models.AssignmentCompleted && current.Status != models.AssignmentCompleted {
		if err := s.courses.incrementCounter(ctx, current.CourseID, "completed_count"); err != nil {
			return updated, err
		}
	}
	return updated, nil
}

func (s *AssignmentService) SetProgress(ctx context.Context, id int64, progress int) (models.CourseAssignment, error) {
	if progress < 0 || progress > 100 {
		return models.CourseAssignment{}, ErrBadRequest("Progress must be between 0 and 100")
	}
	current, err := s.ByID(ctx, id)
	if err != nil {
		return models.CourseAssignment{}, err
	}
	if progress >= 100 {
		return s.SetStatus(ctx, id, models.AssignmentCompleted, &progress)
	}
	if current.Status == models.AssignmentAssigned && progress > 0 {
		return s.SetStatus(ctx, id, models.AssignmentInProgress, &progress)
	}
	rec, err := s.store.Update(ctx, id, store.Record{"progress": progress})
	if err != nil {
		return models.CourseAssignment{}, err
	}
	var updated models.CourseAssignment
	if err := store.Decode(rec, &updated); err != nil {
		return models.CourseAssignment{}, err
	}
	return updated, nil
}

func (s *AssignmentService) Remove(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}
