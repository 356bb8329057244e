package schedule

import (
	"time"

	"gorm.io/gorm"
)

// SlotStatus is the derived tri-state of a slot at read time.
type SlotStatus string

const (
	StatusAvailable   SlotStatus = "AVAILABLE"
	StatusBooked      SlotStatus = "BOOKED"
	StatusMaintenance SlotStatus = "MAINTENANCE"
)

type TimeSlot struct {
	gorm.Model
	CourtID   uint      `gorm:"not null;index:idx_slot_court_start,unique" json:"court_id"`
	StartTime time.Time `gorm:"not null;index:idx_slot_court_start,unique" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	// A maintenance block makes the slot unbookable regardless of booking state.
	IsMaintenanceBlocked bool   `gorm:"default:false" json:"is_maintenance_blocked"`
	MaintenanceReason    string `json:"maintenance_reason,omitempty"`
}

// Overlaps reports whether the slot's interval intersects [start, end).
// Touching boundaries do not count as overlap.
func (s *TimeSlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// SlotWithBooking is a TimeSlot joined with whether a CONFIRMED booking
// currently references it.
type SlotWithBooking struct {
	TimeSlot
	HasConfirmedBooking bool `json:"-" gorm:"column:has_confirmed_booking"`
}

// SlotView is the read-model handed to callers: a slot plus its derived status.
type SlotView struct {
	ID        uint       `json:"id"`
	CourtID   uint       `json:"court_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    SlotStatus `json:"status"`
	Reason    string     `json:"maintenance_reason,omitempty"`
}

// AvailabilitySummary aggregates slot statuses over a facility and range.
type AvailabilitySummary struct {
	TotalSlots             int `json:"total_slots"`
	AvailableSlots         int `json:"available_slots"`
	BookedSlots            int `json:"booked_slots"`
	MaintenanceSlots       int `json:"maintenance_slots"`
	AvailabilityPercentage int `json:"availability_percentage"`
}

// GenerateResult reports the outcome of a bulk slot generation run.
type GenerateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type GenerateSlotsInput struct {
	StartDate       string `json:"start_date" binding:"required" example:"2025-08-01"`
	EndDate         string `json:"end_date" binding:"required" example:"2025-08-07"`
	DurationMinutes int    `json:"duration_minutes" example:"60"`
}

type TimeSlotInput struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type MaintenanceInput struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason"`
}
