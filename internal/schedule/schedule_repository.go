package schedule

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// confirmedBookingExpr selects, per slot row, whether a live CONFIRMED booking
// references it. Kept as a subquery so the bookings package stays the only
// writer of that table.
const confirmedBookingExpr = "EXISTS(SELECT 1 FROM bookings WHERE bookings.time_slot_id = time_slots.id AND bookings.status = 'CONFIRMED' AND bookings.deleted_at IS NULL) AS has_confirmed_booking"

// ScheduleRepository defines all database operations for time slots
type ScheduleRepository interface {
	CreateSlot(slot *TimeSlot) error
	CreateSlots(slots []TimeSlot) error
	GetSlotByID(id uint) (*TimeSlot, error)
	// ListCourtSlots returns a court's slots in [from, to] joined with their
	// confirmed-booking state, ordered by start time.
	ListCourtSlots(courtID uint, from, to time.Time) ([]SlotWithBooking, error)
	// ListCourtsSlots is ListCourtSlots across several courts, ordered by
	// start time then court id.
	ListCourtsSlots(courtIDs []uint, from, to time.Time) ([]SlotWithBooking, error)
	// FindSlotAt returns the slot starting exactly at startTime on the court,
	// or ErrSlotNotFound.
	FindSlotAt(courtID uint, startTime time.Time) (*SlotWithBooking, error)
	UpdateSlot(slot *TimeSlot) error
	// DeleteSlot removes a slot unless a CONFIRMED booking references it.
	DeleteSlot(id uint) error
	HasOverlap(courtID uint, start, end time.Time) (bool, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

// CreateSlot adds a new time slot after checking for overlap on the same court.
func (r *scheduleRepository) CreateSlot(slot *TimeSlot) error {
	overlap, err := r.HasOverlap(slot.CourtID, slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}
	if overlap {
		return ErrSlotOverlap
	}
	return r.db.Create(slot).Error
}

// CreateSlots adds multiple time slots at once. Overlap filtering is the
// generator's job; the unique (court_id, start_time) index is the backstop.
func (r *scheduleRepository) CreateSlots(slots []TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.Create(&slots).Error
}

func (r *scheduleRepository) GetSlotByID(id uint) (*TimeSlot, error) {
	var slot TimeSlot
	if err := r.db.First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *scheduleRepository) ListCourtSlots(courtID uint, from, to time.Time) ([]SlotWithBooking, error) {
	var slots []SlotWithBooking
	err := r.db.Model(&TimeSlot{}).
		Select("time_slots.*, " + confirmedBookingExpr).
		Where("court_id = ? AND start_time >= ? AND start_time <= ?", courtID, from, to).
		Order("start_time asc").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *scheduleRepository) ListCourtsSlots(courtIDs []uint, from, to time.Time) ([]SlotWithBooking, error) {
	if len(courtIDs) == 0 {
		return []SlotWithBooking{}, nil
	}

	var slots []SlotWithBooking
	err := r.db.Model(&TimeSlot{}).
		Select("time_slots.*, " + confirmedBookingExpr).
		Where("court_id IN ? AND start_time >= ? AND start_time <= ?", courtIDs, from, to).
		Order("start_time asc, court_id asc").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *scheduleRepository) FindSlotAt(courtID uint, startTime time.Time) (*SlotWithBooking, error) {
	var slot SlotWithBooking
	err := r.db.Model(&TimeSlot{}).
		Select("time_slots.*, " + confirmedBookingExpr).
		Where("court_id = ? AND start_time = ?", courtID, startTime).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *scheduleRepository) UpdateSlot(slot *TimeSlot) error {
	return r.db.Save(slot).Error
}

// DeleteSlot removes a time slot; refused while a CONFIRMED booking references it.
func (r *scheduleRepository) DeleteSlot(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Table("bookings").
			Where("time_slot_id = ? AND status = ? AND deleted_at IS NULL", id, "CONFIRMED").
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlotHasBooking
		}

		result := tx.Delete(&TimeSlot{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSlotNotFound
		}
		return nil
	})
}

// HasOverlap reports whether any slot on the court intersects [start, end).
func (r *scheduleRepository) HasOverlap(courtID uint, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&TimeSlot{}).
		Where("court_id = ? AND start_time < ? AND end_time > ?", courtID, end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
