package services

import (
	"context"
	"testing"
)

func TestChatSendAndUnread(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Chat.Send(ctx, 1, ChatSenderManager, "welcome aboard"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := r.Chat.Send(ctx, 1, ChatSenderIntern, "thanks!"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	// A different conversation stays independent.
	if _, err := r.Chat.Send(ctx, 2, ChatSenderManager, "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	messages, err := r.Chat.Conversation(ctx, 1, 0)
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}

	// The intern has one unread manager message.
	count, err := r.Chat.UnreadCount(ctx, 1, ChatSenderIntern)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("intern unread = %d, want 1", count)
	}

	updated, err := r.Chat.MarkRead(ctx, 1, ChatSenderIntern)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if updated != 1 {
		t.Fatalf("MarkRead updated %d, want 1", updated)
	}
	count, _ = r.Chat.UnreadCount(ctx, 1, ChatSenderIntern)
	if count != 0 {
		t.Fatalf("unread after MarkRead = %d", count)
	}

	// The manager side still sees the intern's reply as unread.
	count, _ = r.Chat.UnreadCount(ctx, 1, ChatSenderManager)
	if count != 1 {
		t.Fatalf("manager unread = %d, want 1", count)
	}
}

func TestChatValidation(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Chat.Send(ctx, 1, ChatSenderIntern, "   "); err == nil {
		t.Fatal("blank message accepted")
	}
	if _, err := r.Chat.Send(ctx, 1, "robot", "hi"); err == nil {
		t.Fatal("unknown sender role accepted")
	}
}
