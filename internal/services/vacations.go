package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

type VacationService struct {
	store         *store.Store
	interns       *InternService
	users         *UserService
	notifications *NotificationService
}

func NewVacationService(s *store.Store, interns *InternService, users *UserService, notifications *NotificationService) *VacationService {
	return &VacationService{store: s, interns: interns, users: users, notifications: notifications}
}

// Submit files a pending request and alerts every manager.
func (s *VacationService) Submit(ctx context.Context, internID int64, startDate, endDate string, reason *string) (models.VacationRequest, error) {
	intern, err := s.interns.ByID(ctx, internID)
	if err != nil {
		return models.VacationRequest{}, err
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return models.VacationRequest{}, ErrBadRequest("Invalid start date")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return models.VacationRequest{}, ErrBadRequest("Invalid end date")
	}
	if end.Before(start) {
		return models.VacationRequest{}, ErrBadRequest("End date cannot be before start date")
	}
	request := models.VacationRequest{
		InternID:  internID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.VacationPending,
		Reason:    reason,
	}
	rec, err := store.Encode(request)
	if err != nil {
		return models.VacationRequest{}, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return models.VacationRequest{}, err
	}
	if err := store.Decode(created, &request); err != nil {
		return models.VacationRequest{}, err
	}
	managers, err := s.users.ByRole(ctx, models.RoleManager)
	if err == nil {
		for _, manager := range managers {
			_, _ = s.notifications.Notify(ctx, models.Notification{
				UserID:     manager.ID,
				Type:       "vacation_requested",
				Title:      fmt.Sprintf("Vacation request from %s", intern.Name),
				Body:       fmt.Sprintf("%s to %s", startDate, endDate),
				TargetKind: "vacation_request",
				TargetID:   strconv.FormatInt(request.ID, 10),
				ActorName:  intern.Name,
			})
		}
	}
	return request, nil
}

func (s *VacationService) ByID(ctx context.Context, id int64) (models.VacationRequest, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.VacationRequest{}, ErrNotFound("Vacation request not found")
	}
	var request models.VacationRequest
	if err := store.Decode(rec, &request); err != nil {
		return models.VacationRequest{}, err
	}
	return request, nil
}

func (s *VacationService) ListByIntern(ctx context.Context, internID int64) ([]models.VacationRequest, error) {
	recs, err := s.store.Filter(ctx, store.Query{"intern_id": store.Eq(internID)}, "-created_date", 0)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.VacationRequest](recs)
}

func (s *VacationService) ListByStatus(ctx context.Context, status string) ([]models.VacationRequest, error) {
	recs, err := s.store.Filter(ctx, store.Query{"status": store.Eq(status)}, "-created_date", 0)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.VacationRequest](recs)
}

func (s *VacationService) Approve(ctx context.Context, id int64, managerNote *string, actorName string) (models.VacationRequest, error) {
	return s.decide(ctx, id, models.VacationApproved, managerNote, actorName)
}

func (s *VacationService) Reject(ctx context.Context, id int64, managerNote *string, actorName string) (models.VacationRequest, error) {
	return s.decide(ctx, id, models.VacationRejected, managerNote, actorName)
}

func (s *VacationService) decide(ctx context.Context, id int64, status string, managerNote *string, actorName string) (models.VacationRequest, error) {
	request, err := s.ByID(ctx, id)
	if err != nil {
		return models.VacationRequest{}, err
	}
	if request.Status != models.VacationPending {
		return models.VacationRequest{}, ErrBadRequest("Request has already been decided")
	}
	patch := store.Record{
		"status":     status,
		"decided_at": time.Now().UTC().Format(time.RFC3339),
	}
	if managerNote != nil {
		patch["manager_note"] = *managerNote
	}
	rec, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.VacationRequest{}, err
	}
	if err := store.Decode(rec, &request); err != nil {
		return models.VacationRequest{}, err
	}
	if intern, err := s.interns.ByID(ctx, request.InternID); err == nil && intern.UserID != "" {
		title := "Vacation request approved"
		if status == models.VacationRejected {
			title = "Vacation request rejected"
		}
		_, _ = s.notifications.Notify(ctx, models.Notification{
			UserID:     intern.UserID,
			Type:       "vacation_" + status,
			Title:      title,
			Body:       fmt.Sprintf("%s to %s", request.StartDate, request.EndDate),
			TargetKind: "vacation_request",
			TargetID:   strconv.FormatInt(request.ID, 10),
			ActorName:  actorName,
		})
	}
	return request, nil
}
