package venue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/review"
	"github.com/KrishKoria/odoo-final/internal/schedule"
)

type fakeVenueRepo struct {
	facilities []facility.Facility
}

func (f *fakeVenueRepo) ListApproved(filters VenueFilters) ([]facility.Facility, error) {
	var out []facility.Facility
	for _, fac := range f.facilities {
		if fac.Status != facility.StatusApproved {
			continue
		}
		if filters.VenueType != "" && string(fac.VenueType) != filters.VenueType {
			continue
		}
		if filters.MinRating > 0 && fac.Rating < filters.MinRating {
			continue
		}
		out = append(out, fac)
	}
	return out, nil
}

func (f *fakeVenueRepo) GetApprovedWithCourts(id uint) (*facility.Facility, error) {
	for i := range f.facilities {
		fac := &f.facilities[i]
		if fac.ID == id && fac.Status == facility.StatusApproved {
			return fac, nil
		}
	}
	return nil, ErrVenueNotFound
}

func (f *fakeVenueRepo) PopularVenues(limit int) ([]facility.Facility, error) {
	out, _ := f.ListApproved(VenueFilters{})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVenueRepo) SportsCategories() ([]SportCategory, error) {
	return nil, nil
}

// fakeCounter reports fixed availability per facility court set, or an error
// for court IDs listed in failFor.
type fakeCounter struct {
	available map[uint]int // first court id -> available count
	failFor   map[uint]bool
}

func (f *fakeCounter) CountAvailableNow(courts []facility.Court, now time.Time) (int, int, error) {
	if len(courts) == 0 {
		return 0, 0, nil
	}
	first := courts[0].ID
	if f.failFor[first] {
		return 0, 0, errors.New("availability backend down")
	}
	return f.available[first], len(courts), nil
}

func (f *fakeCounter) GetFacilityTimeSlots(facilityID uint, date time.Time) ([]schedule.SlotView, error) {
	return nil, nil
}

type fakeReviewLister struct {
	reviews []review.ReviewDetail
}

func (f *fakeReviewLister) ListFacilityReviews(facilityID uint, page, limit int) ([]review.ReviewDetail, int64, error) {
	return f.reviews, int64(len(f.reviews)), nil
}

func court(id uint, sport facility.SportType, price float64, active bool) facility.Court {
	return facility.Court{
		Model:        gorm.Model{ID: id},
		Name:         "Court",
		SportType:    sport,
		PricePerHour: price,
		IsActive:     active,
	}
}

func approvedVenue(id uint, name string, rating float64, courts ...facility.Court) facility.Facility {
	return facility.Facility{
		Model:     gorm.Model{ID: id},
		Name:      name,
		Status:    facility.StatusApproved,
		VenueType: facility.VenueIndoor,
		Rating:    rating,
		Courts:    courts,
	}
}

func newTestService(repo *fakeVenueRepo, counter *fakeCounter) *VenueService {
	return NewVenueService(repo, counter, &fakeReviewLister{}, nil, nil, nil)
}

func TestStartingPrice(t *testing.T) {
	courts := []facility.Court{
		court(1, facility.SportBadminton, 700, true),
		court(2, facility.SportTennis, 400, true),
		court(3, facility.SportSquash, 100, false),
	}
	assert.Equal(t, 400.0, StartingPrice(courts), "inactive courts do not set the price")
	assert.Equal(t, 0.0, StartingPrice(nil))
}

func TestSportsOf(t *testing.T) {
	courts := []facility.Court{
		court(1, facility.SportTennis, 500, true),
		court(2, facility.SportBadminton, 400, true),
		court(3, facility.SportTennis, 600, true),
		court(4, facility.SportSquash, 300, false),
	}
	sports := SportsOf(courts)
	assert.Equal(t, []facility.SportType{facility.SportBadminton, facility.SportTennis}, sports)
}

func TestAvailabilityLabel(t *testing.T) {
	assert.Equal(t, "Available now", AvailabilityLabel(3, 3))
	assert.Equal(t, "2 slots left", AvailabilityLabel(2, 3))
	assert.Equal(t, "Fully booked", AvailabilityLabel(0, 3))
	assert.Equal(t, "Fully booked", AvailabilityLabel(0, 0))
}

func TestListVenuesPriceSortPaginatesAfterResort(t *testing.T) {
	repo := &fakeVenueRepo{facilities: []facility.Facility{
		approvedVenue(1, "Alpha", 4.8, court(1, facility.SportTennis, 900, true)),
		approvedVenue(2, "Beta", 4.5, court(2, facility.SportTennis, 300, true)),
		approvedVenue(3, "Gamma", 4.2, court(3, facility.SportTennis, 600, true)),
	}}
	counter := &fakeCounter{available: map[uint]int{1: 1, 2: 1, 3: 1}}
	svc := newTestService(repo, counter)

	// Page 1 of the price-ascending order must hold the cheapest venue even
	// though the database returned it second.
	items, total, err := svc.ListVenues(VenueFilters{SortBy: SortPriceAsc, Page: 1, Limit: 2}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "Beta", items[0].Name)
	assert.Equal(t, "Gamma", items[1].Name)

	items, _, err = svc.ListVenues(VenueFilters{SortBy: SortPriceAsc, Page: 2, Limit: 2}, time.Now())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Alpha", items[0].Name)
}

func TestListVenuesMaxPriceFiltersOnDerivedPrice(t *testing.T) {
	repo := &fakeVenueRepo{facilities: []facility.Facility{
		approvedVenue(1, "Alpha", 4.8, court(1, facility.SportTennis, 900, true)),
		approvedVenue(2, "Beta", 4.5, court(2, facility.SportTennis, 300, true)),
	}}
	counter := &fakeCounter{available: map[uint]int{1: 1, 2: 1}}
	svc := newTestService(repo, counter)

	items, total, err := svc.ListVenues(VenueFilters{MaxPrice: 500}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Beta", items[0].Name)
}

func TestListVenuesMinPriceFiltersOnDerivedPrice(t *testing.T) {
	repo := &fakeVenueRepo{facilities: []facility.Facility{
		approvedVenue(1, "Alpha", 4.8, court(1, facility.SportTennis, 900, true)),
		approvedVenue(2, "Beta", 4.5, court(2, facility.SportTennis, 300, true)),
	}}
	counter := &fakeCounter{available: map[uint]int{1: 1, 2: 1}}
	svc := newTestService(repo, counter)

	items, total, err := svc.ListVenues(VenueFilters{MinPrice: 500}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Alpha", items[0].Name)
}

func TestListVenuesAvailabilitySort(t *testing.T) {
	repo := &fakeVenueRepo{facilities: []facility.Facility{
		approvedVenue(1, "Alpha", 4.9, court(1, facility.SportTennis, 500, true)),
		approvedVenue(2, "Beta", 4.2, court(2, facility.SportTennis, 400, true)),
		approvedVenue(3, "Gamma", 4.7, court(3, facility.SportTennis, 600, true)),
	}}
	// Alpha has the best rating but is fully booked; Beta and Gamma are open.
	counter := &fakeCounter{available: map[uint]int{1: 0, 2: 1, 3: 1}}
	svc := newTestService(repo, counter)

	items, _, err := svc.ListVenues(VenueFilters{SortBy: SortAvailability}, time.Now())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Gamma", items[0].Name, "open venues lead, best rated first")
	assert.Equal(t, "Beta", items[1].Name)
	assert.Equal(t, "Alpha", items[2].Name, "fully booked venues trail regardless of rating")
}

func TestListVenuesSkipsFailingVenue(t *testing.T) {
	repo := &fakeVenueRepo{facilities: []facility.Facility{
		approvedVenue(1, "Alpha", 4.8, court(1, facility.SportTennis, 900, true)),
		approvedVenue(2, "Beta", 4.5, court(2, facility.SportTennis, 300, true)),
	}}
	counter := &fakeCounter{
		available: map[uint]int{2: 1},
		failFor:   map[uint]bool{1: true},
	}
	svc := newTestService(repo, counter)

	items, total, err := svc.ListVenues(VenueFilters{}, time.Now())
	require.NoError(t, err, "one failing venue must not fail the listing")
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Beta", items[0].Name)
}

func TestListVenuesAvailabilityLabels(t *testing.T) {
	repo := &fakeVenueRepo{facilities: []facility.Facility{
		approvedVenue(1, "Alpha", 4.8,
			court(1, facility.SportTennis, 500, true),
			court(2, facility.SportTennis, 600, true),
		),
	}}
	counter := &fakeCounter{available: map[uint]int{1: 1}}
	svc := newTestService(repo, counter)

	items, _, err := svc.ListVenues(VenueFilters{}, time.Now())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1 slots left", items[0].Availability)
	assert.Equal(t, 500.0, items[0].StartingPrice)
}

func TestGetVenueDetail(t *testing.T) {
	repo := &fakeVenueRepo{facilities: []facility.Facility{
		approvedVenue(1, "Alpha", 4.8, court(1, facility.SportTennis, 500, true)),
	}}
	counter := &fakeCounter{available: map[uint]int{1: 1}}
	svc := newTestService(repo, counter)

	detail, err := svc.GetVenueDetail(1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Alpha", detail.Name)
	assert.Len(t, detail.Courts, 1)

	_, err = svc.GetVenueDetail(99, time.Now())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
