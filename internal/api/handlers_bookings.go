package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"stayhaven/internal/availability"
	"stayhaven/internal/models"
)

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

func parseDateParam(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

// windowFromQuery reads start/end query params into a half-open date range.
func windowFromQuery(r *http.Request) (availability.DateRange, error) {
	start, err := parseDateParam(r.URL.Query().Get("start"))
	if err != nil {
		return availability.DateRange{}, err
	}
	end, err := parseDateParam(r.URL.Query().Get("end"))
	if err != nil {
		return availability.DateRange{}, err
	}
	window := availability.DateRange{Start: start, End: end}
	if !window.IsValid() {
		return availability.DateRange{}, fmt.Errorf("end must be after start")
	}
	return window, nil
}

type createBookingRequest struct {
	RoomID     int64   `json:"room_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Guests     int     `json:"guests"`
	TotalPrice float64 `json:"total_price"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start, err := parseDateParam(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date; expected YYYY-MM-DD")
		return
	}
	end, err := parseDateParam(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date; expected YYYY-MM-DD")
		return
	}

	booking := &models.Booking{
		RoomID:     req.RoomID,
		GuestID:    identity.UserID,
		StartDate:  start,
		EndDate:    end,
		Guests:     req.Guests,
		TotalPrice: req.TotalPrice,
	}
	if err := s.bookings.CreateBooking(r.Context(), booking); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	booking, err := s.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleGetBookingByCode(w http.ResponseWriter, r *http.Request) {
	booking, err := s.bookings.GetBookingByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type transitionRequest struct {
	Version int64 `json:"version"`
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request,
	apply func(id, version, actor int64) error,
) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	if err := apply(id, req.Version, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleConfirmBooking(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, func(id, version, actor int64) error {
		return s.bookings.ConfirmBooking(r.Context(), id, version, actor)
	})
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, func(id, version, actor int64) error {
		return s.bookings.CancelBooking(r.Context(), id, version, actor)
	})
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var (
		bookings []*models.Booking
		err      error
	)
	if identity.Role == models.RoleHost || identity.Role == models.RoleAdmin {
		bookings, err = s.bookings.GetHostBookings(r.Context(), identity.UserID)
	} else {
		bookings, err = s.bookings.GetGuestBookings(r.Context(), identity.UserID)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *Server) handleRoomAvailability(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start and end are required; expected YYYY-MM-DD")
		return
	}

	days, err := s.bookings.GetRoomCalendar(r.Context(), roomID, window)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

type roomCalendar struct {
	RoomID          int64                      `json:"room_id"`
	RoomType        string                     `json:"room_type"`
	AccommodationID int64                      `json:"accommodation_id"`
	Days            []*models.RoomAvailability `json:"days"`
}

// handleMyCalendar returns the occupancy calendar for every room the
// caller hosts over the requested window.
func (s *Server) handleMyCalendar(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	if identity.Role != models.RoleHost && identity.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "host role required")
		return
	}

	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start and end are required; expected YYYY-MM-DD")
		return
	}

	accommodations, err := s.accommodations.ListByHost(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	calendars := make([]roomCalendar, 0)
	for _, acc := range accommodations {
		rooms, err := s.accommodations.ListRooms(r.Context(), acc.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		for _, room := range rooms {
			days, err := s.bookings.GetRoomCalendar(r.Context(), room.ID, window)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			calendars = append(calendars, roomCalendar{
				RoomID:          room.ID,
				RoomType:        room.RoomType,
				AccommodationID: acc.ID,
				Days:            days,
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": calendars})
}

type createBlockRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var req createBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	start, err := parseDateParam(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date; expected YYYY-MM-DD")
		return
	}
	end, err := parseDateParam(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date; expected YYYY-MM-DD")
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	block := &models.AvailabilityBlock{
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}
	if err := s.bookings.CreateBlock(r.Context(), block, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, block)
}

func (s *Server) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	blocks, err := s.bookings.ListBlocks(r.Context(), roomID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocks": blocks})
}

func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	blockID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid block id")
		return
	}
	identity, _ := IdentityFromContext(r.Context())
	if err := s.bookings.DeleteBlock(r.Context(), blockID, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
