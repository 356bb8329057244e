package schedule

import (
	"math"
	"time"

	"github.com/KrishKoria/odoo-final/internal/facility"
)

// DeriveStatus resolves a slot's derived status. Maintenance takes precedence
// over a confirmed booking, then the slot is available.
func DeriveStatus(isMaintenanceBlocked, hasConfirmedBooking bool) SlotStatus {
	if isMaintenanceBlocked {
		return StatusMaintenance
	}
	if hasConfirmedBooking {
		return StatusBooked
	}
	return StatusAvailable
}

// DayBounds normalizes a date to its local [00:00:00, 23:59:59.999] window.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(999*time.Millisecond), date.Location())
	return start, end
}

// AvailabilityService computes bookable-slot views for courts and facilities.
// Every read path derives slot status through this one service so list pages
// and slot grids can never disagree.
type AvailabilityService struct {
	slots      ScheduleRepository
	facilities facility.FacilityRepository
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(slots ScheduleRepository, facilities facility.FacilityRepository) *AvailabilityService {
	return &AvailabilityService{slots: slots, facilities: facilities}
}

func toView(s SlotWithBooking) SlotView {
	return SlotView{
		ID:        s.ID,
		CourtID:   s.CourtID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    DeriveStatus(s.IsMaintenanceBlocked, s.HasConfirmedBooking),
		Reason:    s.MaintenanceReason,
	}
}

// GetCourtAvailability returns the court's slots in [from, to] with derived
// statuses, ordered by start time.
func (s *AvailabilityService) GetCourtAvailability(courtID uint, from, to time.Time) ([]SlotView, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	if _, err := s.facilities.GetCourtByID(courtID); err != nil {
		return nil, err
	}

	slots, err := s.slots.ListCourtSlots(courtID, from, to)
	if err != nil {
		return nil, err
	}

	views := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, toView(slot))
	}
	return views, nil
}

// GetFacilityTimeSlots returns all slots of a facility's active courts on the
// given date, ordered by start time then court id. The facility must be
// approved.
func (s *AvailabilityService) GetFacilityTimeSlots(facilityID uint, date time.Time) ([]SlotView, error) {
	fac, err := s.facilities.GetApprovedFacilityByID(facilityID)
	if err != nil {
		return nil, err
	}

	courtIDs := make([]uint, 0, len(fac.Courts))
	for _, court := range fac.Courts {
		courtIDs = append(courtIDs, court.ID)
	}

	from, to := DayBounds(date)
	slots, err := s.slots.ListCourtsSlots(courtIDs, from, to)
	if err != nil {
		return nil, err
	}

	views := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, toView(slot))
	}
	return views, nil
}

// CheckSlotAvailability reports whether the slot starting at startTime on the
// court is bookable. When no slot row exists yet the court's operating window
// decides, so facilities can be queried before slots are materialized.
func (s *AvailabilityService) CheckSlotAvailability(courtID uint, startTime time.Time) (bool, error) {
	slot, err := s.slots.FindSlotAt(courtID, startTime)
	if err != nil {
		if err != ErrSlotNotFound {
			return false, err
		}

		court, err := s.facilities.GetCourtByID(courtID)
		if err != nil {
			return false, err
		}
		if !court.IsActive {
			return false, nil
		}
		return court.OperatesAt(startTime.Hour()), nil
	}

	return DeriveStatus(slot.IsMaintenanceBlocked, slot.HasConfirmedBooking) == StatusAvailable, nil
}

// GetAvailabilitySummary aggregates slot statuses for a facility over a range.
// The percentage is 0 when the facility has no slots in the range.
func (s *AvailabilityService) GetAvailabilitySummary(facilityID uint, from, to time.Time) (*AvailabilitySummary, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	fac, err := s.facilities.GetApprovedFacilityByID(facilityID)
	if err != nil {
		return nil, err
	}

	courtIDs := make([]uint, 0, len(fac.Courts))
	for _, court := range fac.Courts {
		courtIDs = append(courtIDs, court.ID)
	}

	slots, err := s.slots.ListCourtsSlots(courtIDs, from, to)
	if err != nil {
		return nil, err
	}

	summary := &AvailabilitySummary{}
	for _, slot := range slots {
		summary.TotalSlots++
		switch DeriveStatus(slot.IsMaintenanceBlocked, slot.HasConfirmedBooking) {
		case StatusMaintenance:
			summary.MaintenanceSlots++
		case StatusBooked:
			summary.BookedSlots++
		default:
			summary.AvailableSlots++
		}
	}

	if summary.TotalSlots > 0 {
		summary.AvailabilityPercentage = int(math.Round(float64(summary.AvailableSlots) / float64(summary.TotalSlots) * 100))
	}

	return summary, nil
}

// CountAvailableNow returns, for the given courts, how many are bookable for
// the hour containing now, falling back to operating hours for courts without
// a materialized slot.
func (s *AvailabilityService) CountAvailableNow(courts []facility.Court, now time.Time) (available int, total int, err error) {
	hourStart := now.Truncate(time.Hour)

	for _, court := range courts {
		if !court.IsActive {
			continue
		}
		total++

		slot, err := s.slots.FindSlotAt(court.ID, hourStart)
		if err != nil {
			if err != ErrSlotNotFound {
				return 0, 0, err
			}
			if court.OperatesAt(hourStart.Hour()) {
				available++
			}
			continue
		}

		if DeriveStatus(slot.IsMaintenanceBlocked, slot.HasConfirmedBooking) == StatusAvailable {
			available++
		}
	}

	return available, total, nil
}
