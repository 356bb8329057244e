package schedule

import (
	"time"

	"github.com/KrishKoria/odoo-final/internal/facility"
)

// SlotGenerator materializes bookable time slots for a court from its
// operating hours. Generation is idempotent, rerunning over a range skips
// every interval that already has a slot.
type SlotGenerator struct {
	slots      ScheduleRepository
	facilities facility.FacilityRepository
}

// NewSlotGenerator creates a new slot generator
func NewSlotGenerator(slots ScheduleRepository, facilities facility.FacilityRepository) *SlotGenerator {
	return &SlotGenerator{slots: slots, facilities: facilities}
}

// GenerateSlots creates slots of durationMinutes for every day in
// [startDate, endDate], aligned to the court's operating start hour. A slot
// whose end would pass the operating end hour is not created.
func (g *SlotGenerator) GenerateSlots(courtID uint, startDate, endDate time.Time, durationMinutes int) (*GenerateResult, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidRange
	}

	court, err := g.facilities.GetCourtByID(courtID)
	if err != nil {
		return nil, err
	}
	if !court.IsActive {
		return nil, ErrCourtInactive
	}

	duration := time.Duration(durationMinutes) * time.Minute
	result := &GenerateResult{}
	var pending []TimeSlot

	dayStart, _ := DayBounds(startDate)
	lastDay, rangeEnd := DayBounds(endDate)

	for day := dayStart; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		open := day.Add(time.Duration(court.OperatingStartHour) * time.Hour)
		closing := day.Add(time.Duration(court.OperatingEndHour) * time.Hour)

		for start := open; !start.Add(duration).After(closing); start = start.Add(duration) {
			pending = append(pending, TimeSlot{
				CourtID:   courtID,
				StartTime: start,
				EndTime:   start.Add(duration),
			})
		}
	}

	if len(pending) == 0 {
		return result, nil
	}

	// Existing rows in the range trim the batch before insertion so reruns
	// do not trip the (court_id, start_time) unique index. The lookup spans
	// through the end of the last day, not just its midnight.
	existing, err := g.slots.ListCourtSlots(courtID, dayStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	taken := make(map[int64]bool, len(existing))
	for _, slot := range existing {
		taken[slot.StartTime.Unix()] = true
	}

	fresh := make([]TimeSlot, 0, len(pending))
	for _, slot := range pending {
		if taken[slot.StartTime.Unix()] {
			result.Skipped++
			continue
		}
		fresh = append(fresh, slot)
	}

	if len(fresh) > 0 {
		if err := g.slots.CreateSlots(fresh); err != nil {
			return nil, err
		}
	}
	result.Created = len(fresh)

	return result, nil
}
