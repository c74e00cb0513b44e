package httpapi

import (
	"encoding/json"
	"net/http"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/services"
	"ascenda-backend-go/internal/store"
)

func (s *Server) ListCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := services.CourseFilter{
		Category:      query.Get("category"),
		Difficulty:    query.Get("difficulty"),
		PublishedOnly: query.Get("published") == "true",
		Search:        query.Get("q"),
	}
	// Interns only ever see published courses.
	if CurrentRole(r) == models.RoleIntern {
		filter.PublishedOnly = true
	}
	courses, err := s.Registry.Courses.List(r.Context(), filter, query.Get("sort"), parseInt(query.Get("limit"), 0))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": courses})
}

func (s *Server) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "courseId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid course id")
		return
	}
	course, err := s.Registry.Courses.ByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !course.Published && CurrentRole(r) == models.RoleIntern {
		WriteError(w, http.StatusNotFound, "Course not found")
		return
	}
	WriteJSON(w, http.StatusOK, course)
}

func (s *Server) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var course models.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	created, err := s.Registry.Courses.Create(r.Context(), course)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "courseId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid course id")
		return
	}
	var patch store.Record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	updated, err := s.Registry.Courses.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "courseId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid course id")
		return
	}
	if err := s.Registry.Courses.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) SetCoursePublished(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "courseId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid course id")
		return
	}
	var req struct {
		Published bool `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	course, err := s.Registry.Courses.SetPublished(r.Context(), id, req.Published)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, course)
}

func (s *Server) AssignCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "courseId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid course id")
		return
	}
	var req struct {
		InternIDs []int64 `json:"internIds"`
		DueDate   *string `json:"dueDate"`
		Notes     *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	created, err := s.Registry.Assignments.Assign(r.Context(), id, req.InternIDs, req.DueDate, req.Notes, CurrentUserName(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"items": created})
}

func (s *Server) ListCourseAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "courseId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid course id")
		return
	}
	items, err := s.Registry.Assignments.ListByCourse(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
