package service

import (
	"context"

	"stayhaven/internal/database"
	"stayhaven/internal/domain"
	"stayhaven/internal/models"

	"github.com/rs/zerolog"
)

// AccommodationService owns the accommodation and room catalogs. Writes are
// restricted to the owning host or an admin.
type AccommodationService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewAccommodationService(repo domain.Repository, logger *zerolog.Logger) *AccommodationService {
	return &AccommodationService{repo: repo, logger: logger}
}

func (s *AccommodationService) CreateAccommodation(ctx context.Context, acc *models.Accommodation, actorID int64) error {
	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsHost() {
		return database.ErrUnauthorized
	}

	if acc.HostID == 0 {
		acc.HostID = actorID
	}
	if acc.HostID != actorID && actor.Role != models.RoleAdmin {
		return database.ErrUnauthorized
	}

	return s.repo.CreateAccommodation(ctx, acc)
}

func (s *AccommodationService) UpdateAccommodation(ctx context.Context, acc *models.Accommodation, actorID int64) error {
	existing, err := s.repo.GetAccommodation(ctx, acc.ID)
	if err != nil {
		return err
	}

	if err := s.authorizeOwner(ctx, existing.HostID, actorID); err != nil {
		return err
	}

	acc.HostID = existing.HostID
	return s.repo.UpdateAccommodation(ctx, acc)
}

func (s *AccommodationService) DeleteAccommodation(ctx context.Context, id, actorID int64) error {
	existing, err := s.repo.GetAccommodation(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeOwner(ctx, existing.HostID, actorID); err != nil {
		return err
	}

	return s.repo.DeleteAccommodation(ctx, id)
}

func (s *AccommodationService) GetAccommodation(ctx context.Context, id int64) (*models.Accommodation, error) {
	return s.repo.GetAccommodation(ctx, id)
}

func (s *AccommodationService) ListAccommodations(ctx context.Context) ([]*models.Accommodation, error) {
	return s.repo.GetActiveAccommodations(ctx)
}

func (s *AccommodationService) ListByHost(ctx context.Context, hostID int64) ([]*models.Accommodation, error) {
	return s.repo.GetAccommodationsByHost(ctx, hostID)
}

func (s *AccommodationService) CreateRoom(ctx context.Context, room *models.Room, actorID int64) error {
	acc, err := s.repo.GetAccommodation(ctx, room.AccommodationID)
	if err != nil {
		return err
	}

	if err := s.authorizeOwner(ctx, acc.HostID, actorID); err != nil {
		return err
	}

	return s.repo.CreateRoom(ctx, room)
}

func (s *AccommodationService) UpdateRoom(ctx context.Context, room *models.Room, actorID int64) error {
	existing, err := s.repo.GetRoom(ctx, room.ID)
	if err != nil {
		return err
	}

	hostID, err := s.repo.GetRoomHost(ctx, existing.ID)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, hostID, actorID); err != nil {
		return err
	}

	room.AccommodationID = existing.AccommodationID
	return s.repo.UpdateRoom(ctx, room)
}

func (s *AccommodationService) DeleteRoom(ctx context.Context, roomID, actorID int64) error {
	hostID, err := s.repo.GetRoomHost(ctx, roomID)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, hostID, actorID); err != nil {
		return err
	}

	return s.repo.DeleteRoom(ctx, roomID)
}

func (s *AccommodationService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *AccommodationService) ListRooms(ctx context.Context, accommodationID int64) ([]*models.Room, error) {
	return s.repo.GetRoomsByAccommodation(ctx, accommodationID)
}

func (s *AccommodationService) authorizeOwner(ctx context.Context, hostID, actorID int64) error {
	if actorID == hostID {
		return nil
	}

	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin {
		return database.ErrUnauthorized
	}
	return nil
}
