package booking

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSlotConflict     = errors.New("slot already has a confirmed booking")
	ErrSlotUnavailable  = errors.New("slot is not available for booking")
	ErrSlotInPast       = errors.New("slot start time has already passed")
	ErrNotBookingOwner  = errors.New("booking belongs to another player")
	ErrNotCancellable   = errors.New("booking can no longer be cancelled")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)
