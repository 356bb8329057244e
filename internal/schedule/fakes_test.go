package schedule

import (
	"sort"
	"sync"
	"time"

	"github.com/KrishKoria/odoo-final/internal/facility"
)

// fakeScheduleRepo is an in-memory ScheduleRepository used across the
// package's tests.
type fakeScheduleRepo struct {
	mu        sync.Mutex
	nextID    uint
	slots     map[uint]*TimeSlot
	confirmed map[uint]bool // slot id -> has CONFIRMED booking
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		nextID:    1,
		slots:     make(map[uint]*TimeSlot),
		confirmed: make(map[uint]bool),
	}
}

func (f *fakeScheduleRepo) CreateSlot(slot *TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.slots {
		if existing.CourtID == slot.CourtID && existing.Overlaps(slot.StartTime, slot.EndTime) {
			return ErrSlotOverlap
		}
	}
	slot.ID = f.nextID
	f.nextID++
	copied := *slot
	f.slots[slot.ID] = &copied
	return nil
}

func (f *fakeScheduleRepo) CreateSlots(slots []TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range slots {
		slots[i].ID = f.nextID
		f.nextID++
		copied := slots[i]
		f.slots[copied.ID] = &copied
	}
	return nil
}

func (f *fakeScheduleRepo) GetSlotByID(id uint) (*TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot, ok := f.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeScheduleRepo) withBooking(slot *TimeSlot) SlotWithBooking {
	return SlotWithBooking{TimeSlot: *slot, HasConfirmedBooking: f.confirmed[slot.ID]}
}

func (f *fakeScheduleRepo) ListCourtSlots(courtID uint, from, to time.Time) ([]SlotWithBooking, error) {
	return f.ListCourtsSlots([]uint{courtID}, from, to)
}

func (f *fakeScheduleRepo) ListCourtsSlots(courtIDs []uint, from, to time.Time) ([]SlotWithBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[uint]bool, len(courtIDs))
	for _, id := range courtIDs {
		wanted[id] = true
	}
	var out []SlotWithBooking
	for _, slot := range f.slots {
		if !wanted[slot.CourtID] {
			continue
		}
		if slot.StartTime.Before(from) || slot.StartTime.After(to) {
			continue
		}
		out = append(out, f.withBooking(slot))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].CourtID < out[j].CourtID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (f *fakeScheduleRepo) FindSlotAt(courtID uint, startTime time.Time) (*SlotWithBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, slot := range f.slots {
		if slot.CourtID == courtID && slot.StartTime.Equal(startTime) {
			sb := f.withBooking(slot)
			return &sb, nil
		}
	}
	return nil, ErrSlotNotFound
}

func (f *fakeScheduleRepo) UpdateSlot(slot *TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[slot.ID]; !ok {
		return ErrSlotNotFound
	}
	copied := *slot
	f.slots[slot.ID] = &copied
	return nil
}

func (f *fakeScheduleRepo) DeleteSlot(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[id]; !ok {
		return ErrSlotNotFound
	}
	if f.confirmed[id] {
		return ErrSlotHasBooking
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeScheduleRepo) HasOverlap(courtID uint, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, slot := range f.slots {
		if slot.CourtID == courtID && slot.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleRepo) markConfirmed(slotID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed[slotID] = true
}

// fakeFacilityRepo backs the availability and generator tests with a couple
// of facilities and courts.
type fakeFacilityRepo struct {
	facilities map[uint]*facility.Facility
	courts     map[uint]*facility.Court
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{
		facilities: make(map[uint]*facility.Facility),
		courts:     make(map[uint]*facility.Court),
	}
}

func (f *fakeFacilityRepo) addFacility(fac facility.Facility) *facility.Facility {
	copied := fac
	f.facilities[copied.ID] = &copied
	return &copied
}

func (f *fakeFacilityRepo) addCourt(c facility.Court) *facility.Court {
	copied := c
	f.courts[copied.ID] = &copied
	if fac, ok := f.facilities[copied.FacilityID]; ok {
		fac.Courts = append(fac.Courts, copied)
	}
	return &copied
}

func (f *fakeFacilityRepo) CreateFacility(fac *facility.Facility) error {
	fac.Status = facility.StatusPending
	f.facilities[fac.ID] = fac
	return nil
}

func (f *fakeFacilityRepo) GetFacilityByID(id uint) (*facility.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok {
		return nil, facility.ErrFacilityNotFound
	}
	return fac, nil
}

func (f *fakeFacilityRepo) GetApprovedFacilityByID(id uint) (*facility.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok || fac.Status != facility.StatusApproved {
		return nil, facility.ErrFacilityNotFound
	}
	return fac, nil
}

func (f *fakeFacilityRepo) GetFacilitiesByOwnerID(ownerID uint) ([]facility.Facility, error) {
	var out []facility.Facility
	for _, fac := range f.facilities {
		if fac.OwnerID == ownerID {
			out = append(out, *fac)
		}
	}
	return out, nil
}

func (f *fakeFacilityRepo) GetPendingFacilities(page, limit int) ([]facility.Facility, int64, error) {
	return nil, 0, nil
}

func (f *fakeFacilityRepo) UpdateFacility(fac *facility.Facility) error {
	f.facilities[fac.ID] = fac
	return nil
}

func (f *fakeFacilityRepo) UpdateFacilityStatus(id uint, status facility.ApprovalStatus) error {
	fac, ok := f.facilities[id]
	if !ok {
		return facility.ErrFacilityNotFound
	}
	fac.Status = status
	return nil
}

func (f *fakeFacilityRepo) CountApprovedFacilities() (int64, error) {
	var n int64
	for _, fac := range f.facilities {
		if fac.Status == facility.StatusApproved {
			n++
		}
	}
	return n, nil
}

func (f *fakeFacilityRepo) AddCourt(c *facility.Court) error {
	f.courts[c.ID] = c
	return nil
}

func (f *fakeFacilityRepo) GetCourtByID(id uint) (*facility.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, facility.ErrCourtNotFound
	}
	return c, nil
}

func (f *fakeFacilityRepo) GetCourtsByFacilityID(facilityID uint, activeOnly bool) ([]facility.Court, error) {
	var out []facility.Court
	for _, c := range f.courts {
		if c.FacilityID != facilityID {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeFacilityRepo) UpdateCourt(c *facility.Court) error {
	f.courts[c.ID] = c
	return nil
}

func (f *fakeFacilityRepo) CountDistinctSports() (int64, error) {
	seen := make(map[facility.SportType]bool)
	for _, c := range f.courts {
		seen[c.SportType] = true
	}
	return int64(len(seen)), nil
}
