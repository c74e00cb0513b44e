package services

import (
	"context"
	"strings"
	"sync"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"

	"github.com/gorilla/websocket"
)

// Sender roles on the wire keep the portal's lowercase convention: every
// mentor/manager message is "manager" from the intern's point of view.
const (
	ChatSenderIntern  = "intern"
	ChatSenderManager = "manager"
)

type ChatService struct {
	store *store.Store
	hub   *ChatHub
}

func NewChatService(s *store.Store, hub *ChatHub) *ChatService {
	return &ChatService{store: s, hub: hub}
}

func (s *ChatService) Send(ctx context.Context, internID int64, senderRole, text string) (models.ChatMessage, error) {
	text, err := NormalizeRequired(text, "Message text is required")
	if err != nil {
		return models.ChatMessage{}, ErrBadRequest(err.Error())
	}
	senderRole = strings.ToLower(strings.TrimSpace(senderRole))
	if senderRole != ChatSenderIntern && senderRole != ChatSenderManager {
		return models.ChatMessage{}, ErrBadRequest("Unknown sender role")
	}
	message := models.ChatMessage{
		InternID:   internID,
		SenderRole: senderRole,
		Text:       text,
		Read:       false,
	}
	rec, err := store.Encode(message)
	if err != nil {
		return models.ChatMessage{}, err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		return models.ChatMessage{}, err
	}
	if err := store.Decode(created, &message); err != nil {
		return models.ChatMessage{}, err
	}
	if s.hub != nil {
		s.hub.Broadcast(message)
	}
	return message, nil
}

func (s *ChatService) Conversation(ctx context.Context, internID int64, limit int) ([]models.ChatMessage, error) {
	recs, err := s.store.Filter(ctx, store.Query{"intern_id": store.Eq(internID)}, "created_date", limit)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.ChatMessage](recs)
}

// MarkRead flags every message sent by the other side of the conversation.
func (s *ChatService) MarkRead(ctx context.Context, internID int64, readerRole string) (int, error) {
	other := ChatSenderManager
	if strings.ToLower(readerRole) == ChatSenderManager {
		other = ChatSenderIntern
	}
	recs, err := s.store.Filter(ctx, store.Query{
		"intern_id":   store.Eq(internID),
		"sender_role": store.Eq(other),
		"read":        store.Eq(false),
	}, "", 0)
	if err != nil {
		return 0, err
	}
	messages, err := store.DecodeAll[models.ChatMessage](recs)
	if err != nil {
		return 0, err
	}
	for i, message := range messages {
		if _, err := s.store.Update(ctx, message.ID, store.Record{"read": true}); err != nil {
			return i, err
		}
	}
	return len(messages), nil
}

func (s *ChatService) UnreadCount(ctx context.Context, internID int64, readerRole string) (int, error) {
	other := ChatSenderManager
	if strings.ToLower(readerRole) == ChatSenderManager {
		other = ChatSenderIntern
	}
	recs, err := s.store.Filter(ctx, store.Query{
		"intern_id":   store.Eq(internID),
		"sender_role": store.Eq(other),
		"read":        store.Eq(false),
	}, "", 0)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

// ChatHub fans new messages out to the websocket clients watching each
// conversation.
type ChatHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]int64
	ch      chan models.ChatMessage
}

func NewChatHub() *ChatHub {
	return &ChatHub{
		clients: map[*websocket.Conn]int64{},
		ch:      make(chan models.ChatMessage, 64),
	}
}

func (h *ChatHub) Run(ctx context.Context) {
	for {
		select {
		case message := <-h.ch:
			h.mu.Lock()
			for conn, internID := range h.clients {
				if internID == message.InternID {
					_ = conn.WriteJSON(message)
				}
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (h *ChatHub) Broadcast(message models.ChatMessage) {
	select {
	case h.ch <- message:
	default:
	}
}

func (h *ChatHub) Add(conn *websocket.Conn, internID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = internID
}

func (h *ChatHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}
