package services

import (
	"context"
	"strings"
	"time"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

var internStatuses = map[string]bool{
	models.InternActive:    true,
	models.InternPaused:    true,
	models.InternCompleted: true,
}

type InternService struct {
	store *store.Store
}

func NewInternService(s *store.Store) *InternService {
	return &InternService{store: s}
}

func (s *InternService) List(ctx context.Context, sortSpec string, limit int) ([]models.Intern, error) {
	recs, err := s.store.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Intern](recs)
}

func (s *InternService) ByStatus(ctx context.Context, status string) ([]models.Intern, error) {
	recs, err := s.store.Filter(ctx, store.Query{"status": store.Eq(status)}, "name", 0)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Intern](recs)
}

func (s *InternService) ByID(ctx context.Context, id int64) (models.Intern, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Intern{}, ErrNotFound("Intern not found")
	}
	var intern models.Intern
	if err := store.Decode(rec, &intern); err != nil {
		return models.Intern{}, err
	}
	return intern, nil
}

// ByUserID resolves the intern record behind a user account.
func (s *InternService) ByUserID(ctx context.Context, userID string) (models.Intern, error) {
	recs, err := s.store.Filter(ctx, store.Query{"user_id": store.Eq(userID)}, "", 1)
	if err != nil {
		return models.Intern{}, err
	}
	if len(recs) == 0 {
		return models.Intern{}, ErrNotFound("Intern not found")
	}
	var intern models.Intern
	if err := store.Decode(recs[0], &intern); err != nil {
		return models.Intern{}, err
	}
	return intern, nil
}

func (s *InternService) Create(ctx context.Context, intern models.Intern) (models.Intern, error) {
	name, err := NormalizeRequired(intern.Name, "Intern name is required")
	if err != nil {
		return models.Intern{}, ErrBadRequest(err.Error())
	}
	intern.Name = name
	if intern.Status == "" {
		intern.Status = models.InternActive
	}
	if !internStatuses[intern.Status] {
		return models.Intern{}, ErrBadRequest("Unknown intern status")
	}
	rec, err := store.Encode(intern)
	if err != nil {
		return models.Intern{}, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return models.Intern{}, err
	}
	var out models.Intern
	if err := store.Decode(created, &out); err != nil {
		return models.Intern{}, err
	}
	return out, nil
}

func (s *InternService) Update(ctx context.Context, id int64, patch store.Record) (models.Intern, error) {
	if status, ok := patch["status"].(string); ok && !internStatuses[status] {
		return models.Intern{}, ErrBadRequest("Unknown intern status")
	}
	rec, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return models.Intern{}, err
	}
	var out models.Intern
	if err := store.Decode(rec, &out); err != nil {
		return models.Intern{}, err
	}
	return out, nil
}

func (s *InternService) Remove(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}

// Leaderboard lists interns by points, highest first.
func (s *InternService) Leaderboard(ctx context.Context, limit int) ([]models.Intern, error) {
	return s.List(ctx, "-points", limit)
}

// RecordPerformance appends a dated score to the intern's history and adds
// the score to their running points total.
func (s *InternService) RecordPerformance(ctx context.Context, id int64, date string, score float64) (models.Intern, error) {
	intern, err := s.ByID(ctx, id)
	if err != nil {
		return models.Intern{}, err
	}
	if strings.TrimSpace(date) == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	history := append(intern.PerformanceHistory, models.PerformancePoint{Date: date, Score: score})
	return s.Update(ctx, id, store.Record{
		"performance_history": encodeJSONValue(history),
		"points":              intern.Points + score,
	})
}

func (s *InternService) SetWellBeing(ctx context.Context, id int64, wellBeing string) (models.Intern, error) {
	return s.Update(ctx, id, store.Record{"well_being": strings.TrimSpace(wellBeing)})
}
