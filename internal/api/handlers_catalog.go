package api

import (
	"encoding/json"
	"net/http"

	"stayhaven/internal/models"
)

func (s *Server) handleCreateAccommodation(w http.ResponseWriter, r *http.Request) {
	var acc models.Accommodation
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	identity, _ := IdentityFromContext(r.Context())
	if err := s.accommodations.CreateAccommodation(r.Context(), &acc, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

func (s *Server) handleListAccommodations(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	if r.URL.Query().Get("mine") == "true" {
		accs, err := s.accommodations.ListByHost(r.Context(), identity.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"accommodations": accs})
		return
	}

	accs, err := s.accommodations.ListAccommodations(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accommodations": accs})
}

func (s *Server) handleGetAccommodation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	acc, err := s.accommodations.GetAccommodation(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (s *Server) handleUpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}

	var acc models.Accommodation
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	acc.ID = id

	identity, _ := IdentityFromContext(r.Context())
	if err := s.accommodations.UpdateAccommodation(r.Context(), &acc, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (s *Server) handleDeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	identity, _ := IdentityFromContext(r.Context())
	if err := s.accommodations.DeleteAccommodation(r.Context(), id, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	accommodationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}

	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	room.AccommodationID = accommodationID

	identity, _ := IdentityFromContext(r.Context())
	if err := s.accommodations.CreateRoom(r.Context(), &room, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	accommodationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accommodation id")
		return
	}
	rooms, err := s.accommodations.ListRooms(r.Context(), accommodationID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	room, err := s.accommodations.GetRoom(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	room.ID = id

	identity, _ := IdentityFromContext(r.Context())
	if err := s.accommodations.UpdateRoom(r.Context(), &room, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	identity, _ := IdentityFromContext(r.Context())
	if err := s.accommodations.DeleteRoom(r.Context(), id, identity.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
