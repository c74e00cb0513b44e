package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/services"

	"github.com/gorilla/websocket"
)

// chatSenderFor maps the access-token role onto the conversation side.
func chatSenderFor(role string) string {
	if role == models.RoleIntern {
		return services.ChatSenderIntern
	}
	return services.ChatSenderManager
}

func (s *Server) ChatHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	if !s.requireInternScope(w, r, id) {
		return
	}
	messages, err := s.Registry.Chat.Conversation(r.Context(), id, parseInt(r.URL.Query().Get("limit"), 0))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": messages})
}

func (s *Server) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	if !s.requireInternScope(w, r, id) {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	message, err := s.Registry.Chat.Send(r.Context(), id, chatSenderFor(CurrentRole(r)), req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, message)
}

func (s *Server) MarkChatRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	if !s.requireInternScope(w, r, id) {
		return
	}
	count, err := s.Registry.Chat.MarkRead(r.Context(), id, chatSenderFor(CurrentRole(r)))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"updated": count})
}

func (s *Server) ChatUnreadCount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	if !s.requireInternScope(w, r, id) {
		return
	}
	count, err := s.Registry.Chat.UnreadCount(r.Context(), id, chatSenderFor(CurrentRole(r)))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}

// ChatSocket streams new messages for one conversation. The client passes
// its access token and the intern id as query parameters.
func (s *Server) ChatSocket(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	token, claims, err := s.Tokens.ParseToken(tokenStr)
	if err != nil || !token.Valid || claims["typ"] != "access" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	internID, err := strconv.ParseInt(r.URL.Query().Get("internId"), 10, 64)
	if err != nil || internID <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	if role, _ := claims["role"].(string); role == models.RoleIntern {
		userID, _ := claims["sub"].(string)
		own, err := s.Registry.Interns.ByUserID(r.Context(), userID)
		if err != nil || own.ID != internID {
			WriteError(w, http.StatusForbidden, "Not allowed")
			return
		}
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.Registry.ChatHub.Add(conn, internID)
	defer func() {
		s.Registry.ChatHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
