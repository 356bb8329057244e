package booking

import (
	"time"

	"gorm.io/gorm"
)

// BookingStatus is the lifecycle state of a booking. CONFIRMED is the only
// state that holds a slot; cancellation releases it.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// Booking ties a player to a time slot. The partial unique index on
// TimeSlotID is the database-level backstop of the conflict guard: at most
// one CONFIRMED booking can ever reference a slot, even under concurrent
// writers.
type Booking struct {
	gorm.Model
	TimeSlotID uint `gorm:"not null;uniqueIndex:idx_booking_confirmed_slot,where:status = 'CONFIRMED'" json:"time_slot_id"`
	PlayerID   uint `gorm:"not null;index" json:"player_id"`
	// CourtID and FacilityID are denormalized from the slot at booking time
	// so history listings avoid a double join.
	CourtID    uint          `gorm:"not null;index" json:"court_id"`
	FacilityID uint          `gorm:"not null;index" json:"facility_id"`
	StartTime  time.Time     `gorm:"not null" json:"start_time"`
	EndTime    time.Time     `gorm:"not null" json:"end_time"`
	TotalPrice float64       `gorm:"not null" json:"total_price"`
	Status     BookingStatus `gorm:"type:VARCHAR(10);default:'CONFIRMED';index" json:"status"`
}

// Completed reports whether the booking's slot has fully passed. A confirmed
// booking whose end time is behind now reads as completed regardless of
// whether the sweep has persisted the status yet.
func (b *Booking) Completed(now time.Time) bool {
	return b.Status == StatusCompleted ||
		(b.Status == StatusConfirmed && b.EndTime.Before(now))
}

// EffectiveStatus resolves the status a reader should see at the given time.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Completed(now) {
		return StatusCompleted
	}
	return b.Status
}

type CreateBookingInput struct {
	TimeSlotID uint `json:"time_slot_id" binding:"required"`
}

// BookingDetail is a booking joined with display data for history pages.
type BookingDetail struct {
	Booking
	FacilityName string `gorm:"column:facility_name" json:"facility_name"`
	CourtName    string `gorm:"column:court_name" json:"court_name"`
	SportType    string `gorm:"column:sport_type" json:"sport_type"`
	PlayerName   string `gorm:"column:player_name" json:"player_name,omitempty"`
}
