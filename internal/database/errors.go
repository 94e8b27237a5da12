package database

import "errors"

// Domain rejections surfaced to callers. Infrastructure faults are wrapped
// with fmt.Errorf and are distinguishable from these via errors.Is.
var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrBlockNotFound         = errors.New("availability block not found")
	ErrUserNotFound          = errors.New("user not found")

	ErrConflict = errors.New("date range conflicts with an existing booking")
	ErrBlocked  = errors.New("date range is blocked for the room")

	ErrCapacityExceeded  = errors.New("guest count exceeds room capacity")
	ErrUnauthorized      = errors.New("actor is not allowed to perform this operation")
	ErrInvalidTransition = errors.New("invalid booking status transition")

	ErrPastDate   = errors.New("booking cannot start in the past")
	ErrDateTooFar = errors.New("booking starts too far in the future")

	ErrConcurrentModification = errors.New("booking was modified concurrently")
)
