package httpapi

import (
	"encoding/json"
	"net/http"

	"ascenda-backend-go/internal/models"
)

func (s *Server) SubmitVacation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InternID  int64   `json:"internId"`
		StartDate string  `json:"startDate"`
		EndDate   string  `json:"endDate"`
		Reason    *string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if !s.requireInternScope(w, r, req.InternID) {
		return
	}
	request, err := s.Registry.Vacations.Submit(r.Context(), req.InternID, req.StartDate, req.EndDate, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, request)
}

func (s *Server) ListVacations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		requests []models.VacationRequest
		err      error
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
		requests, err = s.Registry.Vacations.ListByIntern(r.Context(), internID)
	} else if CurrentRole(r) == models.RoleIntern {
		own, ok := s.ownInternID(r)
		if !ok {
			WriteError(w, http.StatusForbidden, "Not allowed")
			return
		}
		requests, err = s.Registry.Vacations.ListByIntern(r.Context(), own)
	} else {
		status := query.Get("status")
		if status == "" {
			status = models.VacationPending
		}
		requests, err = s.Registry.Vacations.ListByStatus(r.Context(), status)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"items": requests})
}

func (s *Server) GetVacation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "requestId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid request id")
		return
	}
	request, err := s.Registry.Vacations.ByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !s.requireInternScope(w, r, request.InternID) {
		return
	}
	WriteJSON(w, http.StatusOK, request)
}

func (s *Server) ApproveVacation(w http.ResponseWriter, r *http.Request) {
	s.decideVacation(w, r, true)
}

func (s *Server) RejectVacation(w http.ResponseWriter, r *http.Request) {
	s.decideVacation(w, r, false)
}

func (s *Server) decideVacation(w http.ResponseWriter, r *http.Request, approve bool) {
	id, ok := parseID(r, "requestId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid request id")
		return
	}
	var req struct {
		ManagerNote *string `json:"managerNote"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid payload")
			return
		}
	}
	var (
		request models.VacationRequest
		err     error
	)
	if approve {
		request, err = s.Registry.Vacations.Approve(r.Context(), id, req.ManagerNote, CurrentUserName(r))
	} else {
		request, err = s.Registry.Vacations.Reject(r.Context(), id, req.ManagerNote, CurrentUserName(r))
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, request)
}
