package httpapi

import (
	"encoding/json"
	"net/http"
)

func (s *Server) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "assignmentId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid assignment id")
		return
	}
	assignment, err := s.Registry.Assignments.ByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.requireInternScope(w, r, assignment.InternID) {
		return
	}
	WriteJSON(w, http.StatusOK, assignment)
}

func (s *Server) SetAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "assignmentId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid assignment id")
		return
	}
	current, err := s.Registry.Assignments.ByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.requireInternScope(w, r, current.InternID) {
		return
	}
	var req struct {
		Status   string `json:"status"`
		Progress *int   `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	assignment, err := s.Registry.Assignments.SetStatus(r.Context(), id, req.Status, req.Progress)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, assignment)
}

func (s *Server) SetAssignmentProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "assignmentId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid assignment id")
		return
	}
	current, err := s.Registry.Assignments.ByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.requireInternScope(w, r, current.InternID) {
		return
	}
	var req struct {
		Progress int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	assignment, err := s.Registry.Assignments.SetProgress(r.Context(), id, req.Progress)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, assignment)
}

func (s *Server) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "assignmentId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid assignment id")
		return
	}
	if err := s.Registry.Assignments.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
