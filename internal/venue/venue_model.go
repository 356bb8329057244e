package venue

import (
	"errors"

	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/review"
	"github.com/KrishKoria/odoo-final/internal/schedule"
)

var ErrVenueNotFound = errors.New("venue not found")

// Sort orders for venue listings. Price sorts order on a derived value and
// are resolved in memory after the database fetch.
const (
	SortRating       = "rating"
	SortPriceAsc     = "price_asc"
	SortPriceDesc    = "price_desc"
	SortName         = "name"
	SortAvailability = "availability"
)

// VenueFilters collects the listing query parameters. SportType, VenueType,
// Location, Search and MinRating push down into SQL; MinPrice and MaxPrice
// bound the derived starting price after transformation.
type VenueFilters struct {
	SportType string
	VenueType string
	Location  string
	Search    string
	MinRating float64
	MinPrice  float64
	MaxPrice  float64
	SortBy    string
	Page      int
	Limit     int
}

// VenueListItem is the card-sized read model for venue listings. StartingPrice
// and Availability are derived per request, never stored.
type VenueListItem struct {
	ID            uint                 `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Address       string               `json:"address"`
	VenueType     facility.VenueType   `json:"venue_type"`
	Photos        []string             `json:"photos"`
	Amenities     []string             `json:"amenities"`
	Rating        float64              `json:"rating"`
	ReviewCount   int                  `json:"review_count"`
	Sports        []facility.SportType `json:"sports"`
	StartingPrice float64              `json:"starting_price"`
	Availability  string               `json:"availability"`
}

// VenueDetail extends the list item with the full court inventory plus
// today's slot grid and the latest reviews. Slots and reviews degrade to
// empty when their lookups fail; the venue page still renders.
type VenueDetail struct {
	VenueListItem
	Latitude      float64               `json:"latitude"`
	Longitude     float64               `json:"longitude"`
	Policies      []string              `json:"policies"`
	Courts        []facility.Court      `json:"courts"`
	TodaySlots    []schedule.SlotView   `json:"today_slots"`
	RecentReviews []review.ReviewDetail `json:"recent_reviews"`
}

// SportCategory counts approved venues offering a sport.
type SportCategory struct {
	SportType  facility.SportType `gorm:"column:sport_type" json:"sport_type"`
	VenueCount int64              `gorm:"column:venue_count" json:"venue_count"`
}

// PlatformStats is the public landing-page counter set.
type PlatformStats struct {
	TotalVenues   int64 `json:"total_venues"`
	TotalSports   int64 `json:"total_sports"`
	TotalBookings int64 `json:"total_bookings"`
	TotalPlayers  int64 `json:"total_players"`
}
