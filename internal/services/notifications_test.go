package services

import (
	"context"
	"testing"

	"ascenda-backend-go/internal/models"
)

func TestNotificationLifecycle(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	first, err := r.Notifications.Notify(ctx, models.Notification{UserID: "u-1", Title: "First"})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if first.Type != "info" {
		t.Fatalf("default type = %s", first.Type)
	}
	_, _ = r.Notifications.Notify(ctx, models.Notification{UserID: "u-1", Title: "Second", Type: "alert"})
	_, _ = r.Notifications.Notify(ctx, models.Notification{UserID: "u-2", Title: "Other user"})

	count, _ := r.Notifications.UnreadCount(ctx, "u-1")
	if count != 2 {
		t.Fatalf("unread = %d, want 2", count)
	}

	marked, err := r.Notifications.MarkRead(ctx, first.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !marked.Read {
		t.Fatal("notification not marked read")
	}

	unread, _ := r.Notifications.ListForUser(ctx, "u-1", true, 0)
	if len(unread) != 1 || unread[0].Title != "Second" {
		t.Fatalf("unexpected unread list: %v", unread)
	}

	updated, err := r.Notifications.MarkAllRead(ctx, "u-1")
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if updated != 1 {
		t.Fatalf("MarkAllRead updated %d", updated)
	}
	count, _ = r.Notifications.UnreadCount(ctx, "u-1")
	if count != 0 {
		t.Fatalf("unread after MarkAllRead = %d", count)
	}

	// The other user's notification is untouched.
	count, _ = r.Notifications.UnreadCount(ctx, "u-2")
	if count != 1 {
		t.Fatalf("other user's unread = %d", count)
	}
}

func TestNotifyValidation(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Notifications.Notify(ctx, models.Notification{Title: "no target"}); err == nil {
		t.Fatal("missing user accepted")
	}
	if _, err := r.Notifications.Notify(ctx, models.Notification{UserID: "u-1"}); err == nil {
		t.Fatal("missing title accepted")
	}
}
