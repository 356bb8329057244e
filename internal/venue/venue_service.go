package venue

import (
	"fmt"
	"sort"
	"time"

	"github.com/KrishKoria/odoo-final/internal/booking"
	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/internal/review"
	"github.com/KrishKoria/odoo-final/internal/schedule"
)

// availabilityCounter is the slice of the schedule package the venue
// transformer needs: how many of a facility's courts are bookable right now,
// and the day's slot grid for the detail page.
type availabilityCounter interface {
	CountAvailableNow(courts []facility.Court, now time.Time) (available int, total int, err error)
	GetFacilityTimeSlots(facilityID uint, date time.Time) ([]schedule.SlotView, error)
}

// reviewLister is the slice of the review package the detail page needs.
type reviewLister interface {
	ListFacilityReviews(facilityID uint, page, limit int) ([]review.ReviewDetail, int64, error)
}

const (
	labelAvailableNow = "Available now"
	labelFullyBooked  = "Fully booked"
)

// AvailabilityLabel renders the card badge from current court availability.
func AvailabilityLabel(available, total int) string {
	switch {
	case total == 0 || available == 0:
		return labelFullyBooked
	case available == total:
		return labelAvailableNow
	default:
		return fmt.Sprintf("%d slots left", available)
	}
}

// StartingPrice is the lowest hourly price across a facility's active courts,
// 0 when it has none.
func StartingPrice(courts []facility.Court) float64 {
	price := 0.0
	for _, court := range courts {
		if !court.IsActive {
			continue
		}
		if price == 0 || court.PricePerHour < price {
			price = court.PricePerHour
		}
	}
	return price
}

// SportsOf collects the distinct sports offered by a facility's active
// courts, sorted for stable output.
func SportsOf(courts []facility.Court) []facility.SportType {
	seen := make(map[facility.SportType]bool)
	for _, court := range courts {
		if court.IsActive {
			seen[court.SportType] = true
		}
	}
	sports := make([]facility.SportType, 0, len(seen))
	for sport := range seen {
		sports = append(sports, sport)
	}
	sort.Slice(sports, func(i, j int) bool { return sports[i] < sports[j] })
	return sports
}

// VenueService assembles venue read models from stored facilities plus
// derived price and availability data.
type VenueService struct {
	repo         VenueRepository
	availability availabilityCounter
	reviews      reviewLister
	facilities   facility.FacilityRepository
	bookings     booking.BookingRepository
	profiles     profile.ProfileRepository
}

// NewVenueService creates a new venue service
func NewVenueService(
	repo VenueRepository,
	availability availabilityCounter,
	reviews reviewLister,
	facilities facility.FacilityRepository,
	bookings booking.BookingRepository,
	profiles profile.ProfileRepository,
) *VenueService {
	return &VenueService{
		repo:         repo,
		availability: availability,
		reviews:      reviews,
		facilities:   facilities,
		bookings:     bookings,
		profiles:     profiles,
	}
}

func (s *VenueService) buildListItem(fac *facility.Facility, now time.Time) (VenueListItem, error) {
	available, total, err := s.availability.CountAvailableNow(fac.Courts, now)
	if err != nil {
		return VenueListItem{}, err
	}

	return VenueListItem{
		ID:            fac.ID,
		Name:          fac.Name,
		Description:   fac.Description,
		Address:       fac.Address,
		VenueType:     fac.VenueType,
		Photos:        fac.Photos,
		Amenities:     fac.Amenities,
		Rating:        fac.Rating,
		ReviewCount:   fac.ReviewCount,
		Sports:        SportsOf(fac.Courts),
		StartingPrice: StartingPrice(fac.Courts),
		Availability:  AvailabilityLabel(available, total),
	}, nil
}

// ListVenues runs the two-phase listing. Phase one pushes stored-column
// filters into SQL; phase two derives price and availability, applies the
// price filter and sort, and paginates the re-sorted result. A facility that
// fails transformation is skipped so one broken venue cannot empty the page.
func (s *VenueService) ListVenues(filters VenueFilters, now time.Time) ([]VenueListItem, int64, error) {
	facilities, err := s.repo.ListApproved(filters)
	if err != nil {
		return nil, 0, err
	}

	items := make([]VenueListItem, 0, len(facilities))
	for i := range facilities {
		item, err := s.buildListItem(&facilities[i], now)
		if err != nil {
			continue
		}
		if filters.MinPrice > 0 && item.StartingPrice < filters.MinPrice {
			continue
		}
		if filters.MaxPrice > 0 && item.StartingPrice > filters.MaxPrice {
			continue
		}
		items = append(items, item)
	}

	switch filters.SortBy {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].StartingPrice < items[j].StartingPrice })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].StartingPrice > items[j].StartingPrice })
	case SortName:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	case SortAvailability:
		// Fully open venues first, rating breaks ties.
		sort.SliceStable(items, func(i, j int) bool {
			openI := items[i].Availability == labelAvailableNow
			openJ := items[j].Availability == labelAvailableNow
			if openI != openJ {
				return openI
			}
			return items[i].Rating > items[j].Rating
		})
	default:
		// SortRating: the repository already orders by rating.
	}

	total := int64(len(items))

	page, limit := filters.Page, filters.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []VenueListItem{}, total, nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}

// GetVenueDetail returns the full read model for one approved venue.
func (s *VenueService) GetVenueDetail(id uint, now time.Time) (*VenueDetail, error) {
	fac, err := s.repo.GetApprovedWithCourts(id)
	if err != nil {
		return nil, err
	}

	item, err := s.buildListItem(fac, now)
	if err != nil {
		return nil, err
	}

	detail := &VenueDetail{
		VenueListItem: item,
		Latitude:      fac.Latitude,
		Longitude:     fac.Longitude,
		Policies:      fac.Policies,
		Courts:        fac.Courts,
		TodaySlots:    []schedule.SlotView{},
		RecentReviews: []review.ReviewDetail{},
	}

	// Slots and reviews are decoration on the detail page; a failure in
	// either leaves the section empty rather than failing the venue.
	if slots, err := s.availability.GetFacilityTimeSlots(fac.ID, now); err == nil {
		detail.TodaySlots = slots
	}
	if reviews, _, err := s.reviews.ListFacilityReviews(fac.ID, 1, 5); err == nil {
		detail.RecentReviews = reviews
	}

	return detail, nil
}

// GetPopularVenues returns the top-rated venues as list items.
func (s *VenueService) GetPopularVenues(limit int, now time.Time) ([]VenueListItem, error) {
	if limit < 1 || limit > 50 {
		limit = 6
	}

	facilities, err := s.repo.PopularVenues(limit)
	if err != nil {
		return nil, err
	}

	items := make([]VenueListItem, 0, len(facilities))
	for i := range facilities {
		item, err := s.buildListItem(&facilities[i], now)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// GetSportsCategories lists the sports offered across approved venues.
func (s *VenueService) GetSportsCategories() ([]SportCategory, error) {
	return s.repo.SportsCategories()
}

// GetPlatformStats gathers the public landing-page counters.
func (s *VenueService) GetPlatformStats() (*PlatformStats, error) {
	venues, err := s.facilities.CountApprovedFacilities()
	if err != nil {
		return nil, err
	}
	sports, err := s.facilities.CountDistinctSports()
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.CountBookings()
	if err != nil {
		return nil, err
	}
	players, err := s.profiles.CountActivePlayers()
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalVenues:   venues,
		TotalSports:   sports,
		TotalBookings: bookings,
		TotalPlayers:  players,
	}, nil
}
