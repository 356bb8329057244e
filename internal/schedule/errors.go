package schedule

import "errors"

var (
	ErrSlotNotFound    = errors.New("time slot not found")
	ErrSlotOverlap     = errors.New("overlapping time slot exists")
	ErrSlotHasBooking  = errors.New("time slot has a confirmed booking")
	ErrInvalidRange    = errors.New("invalid date range")
	ErrInvalidDuration = errors.New("slot duration must be positive")
	ErrCourtInactive   = errors.New("court is not active")
	ErrOutsideHours    = errors.New("slot is outside the court's operating hours")
)
