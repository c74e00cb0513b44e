package httpapi

import (
	"encoding/json"
	"net/http"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"
)

func (s *Server) ListInterns(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	var (
		interns []models.Intern
		err     error
	)
	if status != "" {
		interns, err = s.Registry.Interns.ByStatus(r.Context(), status)
	} else {
		sortSpec := r.URL.Query().Get("sort")
		limit := parseInt(r.URL.Query().Get("limit"), 0)
		interns, err = s.Registry.Interns.List(r.Context(), sortSpec, limit)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": interns})
}

func (s *Server) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 10)
	interns, err := s.Registry.Interns.Leaderboard(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": interns})
}

func (s *Server) GetIntern(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	intern, err := s.Registry.Interns.ByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, intern)
}

func (s *Server) CreateIntern(w http.ResponseWriter, r *http.Request) {
	var intern models.Intern
	if err := json.NewDecoder(r.Body).Decode(&intern); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	created, err := s.Registry.Interns.Create(r.Context(), intern)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) UpdateIntern(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	var patch store.Record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	updated, err := s.Registry.Interns.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteIntern(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	if err := s.Registry.Interns.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) RecordPerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	var req struct {
		Date  string  `json:"date"`
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	intern, err := s.Registry.Interns.RecordPerformance(r.Context(), id, req.Date, req.Score)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, intern)
}

func (s *Server) SetWellBeing(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	var req struct {
		WellBeing string `json:"wellBeing"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	intern, err := s.Registry.Interns.SetWellBeing(r.Context(), id, req.WellBeing)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, intern)
}
