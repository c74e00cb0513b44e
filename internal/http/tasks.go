package httpapi

import (
	"encoding/json"
	"net/http"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		tasks []models.Task
		err   error
	)
	if raw := query.Get("internId"); raw != "" {
		internID := int64(parseInt(raw, 0))
		if internID <= 0 {
			WriteError(w, http.StatusBadRequest, "Invalid intern id")
			return
		}
		if !s.requireInternScope(w, r, internID) {
			return
		}
		tasks, err = s.Registry.Tasks.ListByIntern(r.Context(), internID)
	} else if CurrentRole(r) == models.RoleIntern {
		own, ok := s.ownInternID(r)
		if !ok {
			WriteError(w, http.StatusForbidden, "Not allowed")
			return
		}
		tasks, err = s.Registry.Tasks.ListByIntern(r.Context(), own)
	} else {
		tasks, err = s.Registry.Tasks.List(r.Context(), query.Get("sort"), parseInt(query.Get("limit"), 0))
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": tasks})
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	created, err := s.Registry.Tasks.Create(r.Context(), task)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "taskId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	var patch store.Record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	updated, err := s.Registry.Tasks.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "taskId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid task id")
		return
	}
	if err := s.Registry.Tasks.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
