package booking

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/schedule"
)

// VetSlot applies the booking preconditions to a slot's state. Maintenance
// is checked before booking state so the caller gets the more specific error.
func VetSlot(maintenanceBlocked, hasConfirmedBooking bool, startTime, now time.Time) error {
	if maintenanceBlocked {
		return ErrSlotUnavailable
	}
	if hasConfirmedBooking {
		return ErrSlotConflict
	}
	if !startTime.After(now) {
		return ErrSlotInPast
	}
	return nil
}

// VetCancellation applies the cancellation rules: only the booking's player,
// the facility's owner, or an admin may cancel, only CONFIRMED bookings are
// cancellable, and players may only cancel before the slot starts. Owners
// and admins are the privileged callers and may also cancel in-progress
// bookings.
func VetCancellation(b *Booking, playerID uint, privileged bool, now time.Time) error {
	if b.PlayerID != playerID && !privileged {
		return ErrNotBookingOwner
	}
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if b.Completed(now) {
		return ErrNotCancellable
	}
	if !privileged && !b.StartTime.After(now) {
		return ErrNotCancellable
	}
	return nil
}

// BookingRepository interface defines all database operations for bookings
type BookingRepository interface {
	// AttemptBooking atomically claims the slot for the player. It returns
	// ErrSlotConflict when another CONFIRMED booking holds the slot, however
	// the race resolves.
	AttemptBooking(playerID, slotID uint, now time.Time) (*Booking, error)
	GetBookingByID(id uint) (*Booking, error)
	CancelBooking(id uint) error
	GetPlayerBookings(playerID uint, status BookingStatus, now time.Time, page, limit int) ([]BookingDetail, int64, error)
	GetOwnerBookings(ownerID uint, page, limit int) ([]BookingDetail, int64, error)
	// MarkCompleted persists COMPLETED on confirmed bookings whose slot has
	// passed. Readers do not depend on it; it keeps stored rows tidy.
	MarkCompleted(now time.Time) (int64, error)
	CountBookings() (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// AttemptBooking runs the conflict guard: the slot row is locked FOR UPDATE
// for the duration of the transaction, the preconditions are re-checked under
// the lock, and the partial unique index on bookings catches anything that
// slips past on databases with weaker isolation.
func (r *bookingRepository) AttemptBooking(playerID, slotID uint, now time.Time) (*Booking, error) {
	var booking *Booking

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var slot schedule.TimeSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return schedule.ErrSlotNotFound
			}
			return err
		}

		var confirmed int64
		if err := tx.Model(&Booking{}).
			Where("time_slot_id = ? AND status = ?", slotID, StatusConfirmed).
			Count(&confirmed).Error; err != nil {
			return err
		}

		if err := VetSlot(slot.IsMaintenanceBlocked, confirmed > 0, slot.StartTime, now); err != nil {
			return err
		}

		var court facility.Court
		if err := tx.First(&court, slot.CourtID).Error; err != nil {
			return err
		}
		if !court.IsActive || !court.OperatesAt(slot.StartTime.Hour()) {
			return ErrSlotUnavailable
		}

		var fac facility.Facility
		if err := tx.First(&fac, court.FacilityID).Error; err != nil {
			return err
		}
		if fac.Status != facility.StatusApproved {
			return ErrSlotUnavailable
		}

		booking = &Booking{
			TimeSlotID: slot.ID,
			PlayerID:   playerID,
			CourtID:    court.ID,
			FacilityID: fac.ID,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			TotalPrice: court.PricePerHour * slot.EndTime.Sub(slot.StartTime).Hours(),
			Status:     StatusConfirmed,
		}
		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepository) GetBookingByID(id uint) (*Booking, error) {
	var booking Booking
	if err := r.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CancelBooking(id uint) error {
	result := r.db.Model(&Booking{}).
		Where("id = ? AND status = ?", id, StatusConfirmed).
		Update("status", StatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotCancellable
	}
	return nil
}

func (r *bookingRepository) detailQuery() *gorm.DB {
	return r.db.Table("bookings").
		Select("bookings.*, facilities.name AS facility_name, courts.name AS court_name, courts.sport_type AS sport_type, player_profiles.name AS player_name").
		Joins("JOIN courts ON courts.id = bookings.court_id").
		Joins("JOIN facilities ON facilities.id = bookings.facility_id").
		Joins("JOIN player_profiles ON player_profiles.user_id = bookings.player_id").
		Where("bookings.deleted_at IS NULL")
}

// GetPlayerBookings lists a player's bookings newest first. The status filter
// is applied on the derived status, so COMPLETED includes confirmed bookings
// whose slot has passed even before the sweep runs.
func (r *bookingRepository) GetPlayerBookings(playerID uint, status BookingStatus, now time.Time, page, limit int) ([]BookingDetail, int64, error) {
	query := r.detailQuery().Where("bookings.player_id = ?", playerID)

	switch status {
	case StatusConfirmed:
		query = query.Where("bookings.status = ? AND bookings.end_time >= ?", StatusConfirmed, now)
	case StatusCompleted:
		query = query.Where("(bookings.status = ? OR (bookings.status = ? AND bookings.end_time < ?))",
			StatusCompleted, StatusConfirmed, now)
	case StatusCancelled:
		query = query.Where("bookings.status = ?", StatusCancelled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []BookingDetail
	err := query.
		Order("bookings.start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range bookings {
		bookings[i].Status = bookings[i].EffectiveStatus(now)
	}
	return bookings, total, nil
}

// GetOwnerBookings lists bookings across all facilities the owner manages.
func (r *bookingRepository) GetOwnerBookings(ownerID uint, page, limit int) ([]BookingDetail, int64, error) {
	query := r.detailQuery().Where("facilities.owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []BookingDetail
	err := query.
		Order("bookings.start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) MarkCompleted(now time.Time) (int64, error) {
	result := r.db.Model(&Booking{}).
		Where("status = ? AND end_time < ?", StatusConfirmed, now).
		Update("status", StatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) CountBookings() (int64, error) {
	var count int64
	err := r.db.Model(&Booking{}).Where("status <> ?", StatusCancelled).Count(&count).Error
	return count, err
}
