package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KrishKoria/odoo-final/internal/facility"
)

func TestVetSlot(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)

	assert.NoError(t, VetSlot(false, false, future, now))
	assert.ErrorIs(t, VetSlot(true, false, future, now), ErrSlotUnavailable)
	assert.ErrorIs(t, VetSlot(false, true, future, now), ErrSlotConflict)
	assert.ErrorIs(t, VetSlot(false, false, past, now), ErrSlotInPast)
	assert.ErrorIs(t, VetSlot(false, false, now, now), ErrSlotInPast)

	// Maintenance wins over booking state.
	assert.ErrorIs(t, VetSlot(true, true, future, now), ErrSlotUnavailable)
}

func TestVetCancellation(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	future := &Booking{
		PlayerID:  7,
		StartTime: now.Add(2 * time.Hour),
		EndTime:   now.Add(3 * time.Hour),
		Status:    StatusConfirmed,
	}

	assert.NoError(t, VetCancellation(future, 7, false, now))
	assert.NoError(t, VetCancellation(future, 99, true, now), "admins may cancel any booking")
	assert.ErrorIs(t, VetCancellation(future, 99, false, now), ErrNotBookingOwner)

	started := &Booking{
		PlayerID:  7,
		StartTime: now.Add(-10 * time.Minute),
		EndTime:   now.Add(50 * time.Minute),
		Status:    StatusConfirmed,
	}
	assert.ErrorIs(t, VetCancellation(started, 7, false, now), ErrNotCancellable)
	assert.NoError(t, VetCancellation(started, 1, true, now), "admins may cancel in-progress bookings")

	cancelled := &Booking{PlayerID: 7, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Status: StatusCancelled}
	assert.ErrorIs(t, VetCancellation(cancelled, 7, false, now), ErrAlreadyCancelled)

	passed := &Booking{PlayerID: 7, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Status: StatusConfirmed}
	assert.ErrorIs(t, VetCancellation(passed, 7, false, now), ErrNotCancellable)
	assert.ErrorIs(t, VetCancellation(passed, 7, true, now), ErrNotCancellable, "completed bookings cannot be cancelled even by admins")
}

// fakeFacilityResolver maps facility IDs to owner IDs.
type fakeFacilityResolver struct {
	owners map[uint]uint
}

func (f *fakeFacilityResolver) GetFacilityByID(id uint) (*facility.Facility, error) {
	owner, ok := f.owners[id]
	if !ok {
		return nil, facility.ErrFacilityNotFound
	}
	return &facility.Facility{Model: gorm.Model{ID: id}, OwnerID: owner}, nil
}

func TestFacilityOwnerMayCancelPlayerBooking(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	facilities := &fakeFacilityResolver{owners: map[uint]uint{3: 42}}

	booking := &Booking{
		PlayerID:   7,
		FacilityID: 3,
		StartTime:  now.Add(2 * time.Hour),
		EndTime:    now.Add(3 * time.Hour),
		Status:     StatusConfirmed,
	}

	// The facility's owner gets the same override an admin does.
	assert.True(t, canOverrideCancellation(facilities, booking, 42, false))
	assert.NoError(t, VetCancellation(booking, 42, true, now))

	// An owner of a different facility is just another user.
	assert.False(t, canOverrideCancellation(facilities, booking, 99, false))
	assert.ErrorIs(t, VetCancellation(booking, 99, false, now), ErrNotBookingOwner)

	// A missing facility never grants the override.
	booking.FacilityID = 8
	assert.False(t, canOverrideCancellation(facilities, booking, 42, false))

	// Owners may also cancel in-progress bookings at their facility.
	inProgress := &Booking{
		PlayerID:   7,
		FacilityID: 3,
		StartTime:  now.Add(-10 * time.Minute),
		EndTime:    now.Add(50 * time.Minute),
		Status:     StatusConfirmed,
	}
	assert.True(t, canOverrideCancellation(facilities, inProgress, 42, false))
	assert.NoError(t, VetCancellation(inProgress, 42, true, now))
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	upcoming := &Booking{Status: StatusConfirmed, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)}
	assert.Equal(t, StatusConfirmed, upcoming.EffectiveStatus(now))
	assert.False(t, upcoming.Completed(now))

	inProgress := &Booking{Status: StatusConfirmed, StartTime: now.Add(-30 * time.Minute), EndTime: now.Add(30 * time.Minute)}
	assert.Equal(t, StatusConfirmed, inProgress.EffectiveStatus(now), "in-progress bookings are still confirmed")

	passed := &Booking{Status: StatusConfirmed, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)}
	assert.Equal(t, StatusCompleted, passed.EffectiveStatus(now), "passed bookings read as completed before the sweep runs")

	cancelled := &Booking{Status: StatusCancelled, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour)}
	assert.Equal(t, StatusCancelled, cancelled.EffectiveStatus(now), "cancellation is never overridden")
}

// slotGuard mimics the repository's claim path: check-then-insert under a
// lock, exactly like the row lock plus unique index does in the database.
type slotGuard struct {
	mu        sync.Mutex
	confirmed map[uint]uint // slot id -> player id
}

func (g *slotGuard) claim(playerID, slotID uint, start, now time.Time) (*Booking, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, taken := g.confirmed[slotID]
	if err := VetSlot(false, taken, start, now); err != nil {
		return nil, err
	}
	g.confirmed[slotID] = playerID
	return &Booking{TimeSlotID: slotID, PlayerID: playerID, Status: StatusConfirmed}, nil
}

func (g *slotGuard) release(slotID uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.confirmed, slotID)
}

func TestCancellationReopensSlot(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)
	guard := &slotGuard{confirmed: make(map[uint]uint)}

	_, err := guard.claim(1, 1, start, now)
	require.NoError(t, err)

	_, err = guard.claim(2, 1, start, now)
	require.ErrorIs(t, err, ErrSlotConflict)

	// Dropping the CONFIRMED booking is all it takes to reopen the slot.
	guard.release(1)

	booking, err := guard.claim(2, 1, start, now)
	require.NoError(t, err)
	assert.Equal(t, uint(2), booking.PlayerID)
}

func TestConcurrentClaimsExactlyOneWins(t *testing.T) {
	const players = 32

	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	start := now.Add(2 * time.Hour)
	guard := &slotGuard{confirmed: make(map[uint]uint)}

	var wg sync.WaitGroup
	results := make(chan error, players)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(playerID uint) {
			defer wg.Done()
			_, err := guard.claim(playerID, 1, start, now)
			results <- err
		}(uint(i + 1))
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch err {
		case nil:
			wins++
		case ErrSlotConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	require.Equal(t, 1, wins)
	require.Equal(t, players-1, conflicts)
}
