package httpapi

import (
	"net/http"
)

func (s *Server) ListNotifications(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	items, err := s.Registry.Notifications.ListForUser(
		r.Context(),
		CurrentUserID(r),
		query.Get("unread") == "true",
		parseInt(query.Get("limit"), 50),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) UnreadNotifications(w http.ResponseWriter, r *http.Request) {
	count, err := s.Registry.Notifications.UnreadCount(r.Context(), CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "notificationId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid notification id")
		return
	}
	notification, err := s.Registry.Notifications.ByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if notification.UserID != CurrentUserID(r) {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	notification, err = s.Registry.Notifications.MarkRead(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, notification)
}

func (s *Server) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	count, err := s.Registry.Notifications.MarkAllRead(r.Context(), CurrentUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"updated": count})
}
