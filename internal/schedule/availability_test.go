package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KrishKoria/odoo-final/internal/facility"
)

func seedFacility(repo *fakeFacilityRepo, status facility.ApprovalStatus) *facility.Facility {
	fac := repo.addFacility(facility.Facility{
		Model:   gorm.Model{ID: 1},
		Name:    "City Sports Arena",
		Status:  status,
		OwnerID: 10,
	})
	repo.addCourt(facility.Court{
		Model:              gorm.Model{ID: 1},
		FacilityID:         fac.ID,
		Name:               "Court A",
		SportType:          facility.SportBadminton,
		PricePerHour:       500,
		OperatingStartHour: 6,
		OperatingEndHour:   22,
		IsActive:           true,
	})
	return fac
}

func TestDeriveStatusPrecedence(t *testing.T) {
	assert.Equal(t, StatusMaintenance, DeriveStatus(true, true))
	assert.Equal(t, StatusMaintenance, DeriveStatus(true, false))
	assert.Equal(t, StatusBooked, DeriveStatus(false, true))
	assert.Equal(t, StatusAvailable, DeriveStatus(false, false))
}

func TestGetCourtAvailabilityDerivesStatuses(t *testing.T) {
	slots := newFakeScheduleRepo()
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	svc := NewAvailabilityService(slots, facilities)

	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	free := &TimeSlot{CourtID: 1, StartTime: day.Add(6 * time.Hour), EndTime: day.Add(7 * time.Hour)}
	booked := &TimeSlot{CourtID: 1, StartTime: day.Add(7 * time.Hour), EndTime: day.Add(8 * time.Hour)}
	blocked := &TimeSlot{
		CourtID:              1,
		StartTime:            day.Add(8 * time.Hour),
		EndTime:              day.Add(9 * time.Hour),
		IsMaintenanceBlocked: true,
		MaintenanceReason:    "resurfacing",
	}
	require.NoError(t, slots.CreateSlot(free))
	require.NoError(t, slots.CreateSlot(booked))
	require.NoError(t, slots.CreateSlot(blocked))
	slots.markConfirmed(booked.ID)

	views, err := svc.GetCourtAvailability(1, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, StatusAvailable, views[0].Status)
	assert.Equal(t, StatusBooked, views[1].Status)
	assert.Equal(t, StatusMaintenance, views[2].Status)
	assert.Equal(t, "resurfacing", views[2].Reason)
}

func TestGetCourtAvailabilityOrdering(t *testing.T) {
	slots := newFakeScheduleRepo()
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	svc := NewAvailabilityService(slots, facilities)

	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for _, hour := range []int{10, 6, 8} {
		require.NoError(t, slots.CreateSlot(&TimeSlot{
			CourtID:   1,
			StartTime: day.Add(time.Duration(hour) * time.Hour),
			EndTime:   day.Add(time.Duration(hour+1) * time.Hour),
		}))
	}

	views, err := svc.GetCourtAvailability(1, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.True(t, views[0].StartTime.Before(views[1].StartTime))
	assert.True(t, views[1].StartTime.Before(views[2].StartTime))
}

func TestGetCourtAvailabilityUnknownCourt(t *testing.T) {
	svc := NewAvailabilityService(newFakeScheduleRepo(), newFakeFacilityRepo())

	now := time.Now()
	_, err := svc.GetCourtAvailability(42, now, now.Add(time.Hour))
	assert.ErrorIs(t, err, facility.ErrCourtNotFound)
}

func TestGetCourtAvailabilityInvertedRange(t *testing.T) {
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	svc := NewAvailabilityService(newFakeScheduleRepo(), facilities)

	now := time.Now()
	_, err := svc.GetCourtAvailability(1, now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGetFacilityTimeSlotsSingleDay(t *testing.T) {
	slots := newFakeScheduleRepo()
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	svc := NewAvailabilityService(slots, facilities)

	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	inDay := &TimeSlot{CourtID: 1, StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)}
	nextDay := &TimeSlot{CourtID: 1, StartTime: day.Add(33 * time.Hour), EndTime: day.Add(34 * time.Hour)}
	require.NoError(t, slots.CreateSlot(inDay))
	require.NoError(t, slots.CreateSlot(nextDay))

	views, err := svc.GetFacilityTimeSlots(1, day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, inDay.ID, views[0].ID)
}

func TestGetFacilityTimeSlotsPendingFacilityHidden(t *testing.T) {
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusPending)
	svc := NewAvailabilityService(newFakeScheduleRepo(), facilities)

	_, err := svc.GetFacilityTimeSlots(1, time.Now())
	assert.ErrorIs(t, err, facility.ErrFacilityNotFound)
}

func TestCheckSlotAvailability(t *testing.T) {
	slots := newFakeScheduleRepo()
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	svc := NewAvailabilityService(slots, facilities)

	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	booked := &TimeSlot{CourtID: 1, StartTime: day.Add(7 * time.Hour), EndTime: day.Add(8 * time.Hour)}
	require.NoError(t, slots.CreateSlot(booked))
	slots.markConfirmed(booked.ID)

	ok, err := svc.CheckSlotAvailability(1, booked.StartTime)
	require.NoError(t, err)
	assert.False(t, ok, "confirmed booking blocks the slot")

	// No slot row: the operating window decides.
	ok, err = svc.CheckSlotAvailability(1, day.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckSlotAvailability(1, day.Add(23*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "outside operating hours")
}

func TestCheckSlotAvailabilityInactiveCourt(t *testing.T) {
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	facilities.addCourt(facility.Court{
		Model:              gorm.Model{ID: 2},
		FacilityID:         1,
		Name:               "Court B",
		SportType:          facility.SportTennis,
		OperatingStartHour: 6,
		OperatingEndHour:   22,
		IsActive:           false,
	})
	svc := NewAvailabilityService(newFakeScheduleRepo(), facilities)

	ok, err := svc.CheckSlotAvailability(2, time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetAvailabilitySummary(t *testing.T) {
	slots := newFakeScheduleRepo()
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	svc := NewAvailabilityService(slots, facilities)

	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	statuses := []struct {
		hour    int
		blocked bool
		booked  bool
	}{
		{6, false, false},
		{7, false, true},
		{8, true, false},
		{9, false, false},
	}
	for _, s := range statuses {
		slot := &TimeSlot{
			CourtID:              1,
			StartTime:            day.Add(time.Duration(s.hour) * time.Hour),
			EndTime:              day.Add(time.Duration(s.hour+1) * time.Hour),
			IsMaintenanceBlocked: s.blocked,
		}
		require.NoError(t, slots.CreateSlot(slot))
		if s.booked {
			slots.markConfirmed(slot.ID)
		}
	}

	summary, err := svc.GetAvailabilitySummary(1, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalSlots)
	assert.Equal(t, 2, summary.AvailableSlots)
	assert.Equal(t, 1, summary.BookedSlots)
	assert.Equal(t, 1, summary.MaintenanceSlots)
	assert.Equal(t, 50, summary.AvailabilityPercentage)
}

func TestGetAvailabilitySummaryEmpty(t *testing.T) {
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	svc := NewAvailabilityService(newFakeScheduleRepo(), facilities)

	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	summary, err := svc.GetAvailabilitySummary(1, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalSlots)
	assert.Equal(t, 0, summary.AvailabilityPercentage)
}

func TestCountAvailableNow(t *testing.T) {
	slots := newFakeScheduleRepo()
	facilities := newFakeFacilityRepo()
	seedFacility(facilities, facility.StatusApproved)
	facilities.addCourt(facility.Court{
		Model:              gorm.Model{ID: 2},
		FacilityID:         1,
		Name:               "Court B",
		SportType:          facility.SportTennis,
		OperatingStartHour: 6,
		OperatingEndHour:   22,
		IsActive:           true,
	})
	svc := NewAvailabilityService(slots, facilities)

	now := time.Date(2025, 8, 1, 10, 30, 0, 0, time.UTC)
	hourStart := now.Truncate(time.Hour)

	// Court 1 has a confirmed booking this hour, court 2 falls back to its
	// operating window.
	booked := &TimeSlot{CourtID: 1, StartTime: hourStart, EndTime: hourStart.Add(time.Hour)}
	require.NoError(t, slots.CreateSlot(booked))
	slots.markConfirmed(booked.ID)

	fac, err := facilities.GetApprovedFacilityByID(1)
	require.NoError(t, err)

	available, total, err := svc.CountAvailableNow(fac.Courts, now)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, available)
}
