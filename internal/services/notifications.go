package services

import (
	"context"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

type NotificationService struct {
	store *store.Store
}

func NewNotificationService(s *store.Store) *NotificationService {
	return &NotificationService{store: s}
}

func (s *NotificationService) Notify(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.UserID == "" {
		return models.Notification{}, ErrBadRequest("Notification target user is required")
	}
	title, err := NormalizeRequired(n.Title, "Notification title is required")
	if err != nil {
		return models.Notification{}, ErrBadRequest(err.Error())
	}
	n.Title = title
	if n.Type == "" {
		n.Type = "info"
	}
	n.Read = false
	rec, err := store.Encode(n)
	if err != nil {
		return models.Notification{}, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return models.Notification{}, err
	}
	var out models.Notification
	if err := store.Decode(created, &out); err != nil {
		return models.Notification{}, err
	}
	return out, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := store.Query{"user_id": store.Eq(userID)}
	if unreadOnly {
		query["read"] = store.Eq(false)
	}
	recs, err := s.store.Filter(ctx, query, "-created_date", limit)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Notification](recs)
}

func (s *NotificationService) ByID(ctx context.Context, id int64) (models.Notification, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Notification{}, ErrNotFound("Notification not found")
	}
	var out models.Notification
	if err := store.Decode(rec, &out); err != nil {
		return models.Notification{}, err
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id int64) (models.Notification, error) {
	rec, err := s.store.Update(ctx, id, store.Record{"read": true})
	if err != nil {
		return models.Notification{}, err
	}
	var out models.Notification
	if err := store.Decode(rec, &out); err != nil {
		return models.Notification{}, err
	}
	return out, nil
}

// MarkAllRead flips every unread notification for the user. Each update is
// an independent write; a failure partway leaves earlier flips in place.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	pending, err := s.ListForUser(ctx, userID, true, 0)
	if err != nil {
		return 0, err
	}
	for i, n := range pending {
		if _, err := s.store.Update(ctx, n.ID, store.Record{"read": true}); err != nil {
			return i, err
		}
	}
	return len(pending), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	pending, err := s.ListForUser(ctx, userID, true, 0)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}
