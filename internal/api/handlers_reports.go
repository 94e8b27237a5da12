package api

import (
	"net/http"
	"path/filepath"
	"strconv"

	"stayhaven/internal/models"
)

func (s *Server) handleMyEarnings(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	if identity.Role != models.RoleHost && identity.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "host role required")
		return
	}

	period, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start and end are required; expected YYYY-MM-DD")
		return
	}

	report, err := s.reports.HostReport(r.Context(), identity.UserID, period)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRoomReport(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	period, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start and end are required; expected YYYY-MM-DD")
		return
	}

	report, err := s.reports.RoomReport(r.Context(), roomID, period)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleIncomeReport(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	if identity.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	incomes, err := s.reports.IncomeByAccommodation(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"incomes": incomes})
}

func (s *Server) handleBookingsByPeriod(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}

	var accommodationID int64
	if raw := r.URL.Query().Get("accommodation_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid accommodation_id")
			return
		}
		accommodationID = id
	}

	counts, err := s.reports.BookingsByPeriod(r.Context(), period, accommodationID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"counts": counts})
}

// authorizeExport lets the accommodation owner or an admin download exports.
func (s *Server) authorizeExport(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return 0, false
	}
	if s.exporter == nil {
		writeError(w, http.StatusNotImplemented, "exports are not configured")
		return 0, false
	}

	identity, _ := IdentityFromContext(r.Context())
	acc, err := s.accommodations.GetAccommodation(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return 0, false
	}
	if acc.HostID != identity.UserID && identity.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "not the accommodation owner")
		return 0, false
	}
	return id, true
}

func (s *Server) handleExportOccupancy(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorizeExport(w, r)
	if !ok {
		return
	}
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start and end are required; expected YYYY-MM-DD")
		return
	}

	path, err := s.exporter.OccupancyCalendar(r.Context(), id, window)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

func (s *Server) handleExportEarnings(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorizeExport(w, r)
	if !ok {
		return
	}
	period, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start and end are required; expected YYYY-MM-DD")
		return
	}

	path, err := s.exporter.EarningsReport(r.Context(), id, period)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}
