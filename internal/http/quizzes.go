package httpapi

import (
	"encoding/json"
	"net/http"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/services"
	"ascenda-backend-go/internal/store"
)

func (s *Server) ListQuizTemplates(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true" && CurrentRole(r) != models.RoleIntern
	templates, err := s.Registry.Quizzes.ListTemplates(r.Context(), includeArchived)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": templates})
}

func (s *Server) GetQuizTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "templateId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid template id")
		return
	}
	template, err := s.Registry.Quizzes.TemplateByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, template)
}

func (s *Server) CreateQuizTemplate(w http.ResponseWriter, r *http.Request) {
	var template models.QuizTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	created, err := s.Registry.Quizzes.CreateTemplate(r.Context(), template)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) UpdateQuizTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "templateId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid template id")
		return
	}
	var patch store.Record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	updated, err := s.Registry.Quizzes.UpdateTemplate(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) ArchiveQuizTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "templateId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid template id")
		return
	}
	template, err := s.Registry.Quizzes.ArchiveTemplate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, template)
}

func (s *Server) AssignQuizTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "templateId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid template id")
		return
	}
	var req struct {
		InternIDs  []int64 `json:"internIds"`
		DueDate    *string `json:"dueDate"`
		Visibility string  `json:"visibility"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	assignment, err := s.Registry.Quizzes.AssignTemplate(r.Context(), id, req.InternIDs, req.DueDate, req.Visibility, CurrentUserName(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, assignment)
}

func (s *Server) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic     string         `json:"topic"`
		SourceURL *string        `json:"sourceUrl"`
		Counts    map[string]int `json:"counts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	quiz, err := s.Registry.Quizzes.Generate(r.Context(), services.GenerateParams{
		Topic:     req.Topic,
		SourceURL: req.SourceURL,
		Counts:    req.Counts,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, quiz)
}

func (s *Server) GetGeneratedQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "quizId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid quiz id")
		return
	}
	quiz, err := s.Registry.Quizzes.GeneratedByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, quiz)
}

func (s *Server) ListQuizAssignments(w http.ResponseWriter, r *http.Request) {
	internID := int64(parseInt(r.URL.Query().Get("internId"), 0))
	// Interns only ever see their own assignments.
	if CurrentRole(r) == models.RoleIntern {
		own, ok := s.ownInternID(r)
		if !ok {
			WriteError(w, http.StatusForbidden, "Not allowed")
			return
		}
		internID = own
	}
	items, err := s.Registry.Quizzes.ListAssignments(r.Context(), internID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
