package httpapi

import (
	"net/http"
)

func (s *Server) DashboardReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Registry.Reports.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) InternReport(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "internId")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid intern id")
		return
	}
	report, err := s.Registry.Reports.ForIntern(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
