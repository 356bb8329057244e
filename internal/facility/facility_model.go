package facility

import (
	"gorm.io/gorm"
)

// VenueType distinguishes indoor and outdoor facilities.
type VenueType string

const (
	VenueIndoor  VenueType = "INDOOR"
	VenueOutdoor VenueType = "OUTDOOR"
)

func (v VenueType) Valid() bool {
	return v == VenueIndoor || v == VenueOutdoor
}

// ApprovalStatus is the admin moderation state of a facility. Only APPROVED
// facilities are visible to players.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// SportType enumerates the sports a court can host.
type SportType string

const (
	SportBadminton   SportType = "BADMINTON"
	SportFootball    SportType = "FOOTBALL"
	SportCricket     SportType = "CRICKET"
	SportTennis      SportType = "TENNIS"
	SportBasketball  SportType = "BASKETBALL"
	SportVolleyball  SportType = "VOLLEYBALL"
	SportSquash      SportType = "SQUASH"
	SportTableTennis SportType = "TABLE_TENNIS"
)

func (s SportType) Valid() bool {
	switch s {
	case SportBadminton, SportFootball, SportCricket, SportTennis,
		SportBasketball, SportVolleyball, SportSquash, SportTableTennis:
		return true
	}
	return false
}

type Facility struct {
	gorm.Model
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Address     string         `gorm:"not null" json:"address"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Amenities   []string       `gorm:"serializer:json" json:"amenities"`
	Photos      []string       `gorm:"serializer:json" json:"photos"`
	Policies    []string       `gorm:"serializer:json" json:"policies"`
	VenueType   VenueType      `gorm:"type:VARCHAR(10);not null" json:"venue_type"`
	Status      ApprovalStatus `gorm:"type:VARCHAR(10);default:'PENDING';index" json:"status"`
	// Rating and ReviewCount cache the review aggregator's output; they are
	// recomputed, never hand-edited.
	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`
	OwnerID     uint    `gorm:"not null;index" json:"owner_id"`
	Courts      []Court `json:"courts,omitempty"`
}

type Court struct {
	gorm.Model
	FacilityID   uint      `gorm:"not null;index" json:"facility_id"`
	Name         string    `gorm:"not null" json:"name"`
	SportType    SportType `gorm:"type:VARCHAR(20);not null;index" json:"sport_type"`
	PricePerHour float64   `gorm:"not null" json:"price_per_hour"`
	// Slots may only exist within [OperatingStartHour, OperatingEndHour).
	OperatingStartHour int  `gorm:"not null" json:"operating_start_hour"`
	OperatingEndHour   int  `gorm:"not null" json:"operating_end_hour"`
	IsActive           bool `gorm:"default:true" json:"is_active"`
}

// OperatesAt reports whether the given hour of day falls inside the court's
// operating window.
func (c *Court) OperatesAt(hour int) bool {
	return hour >= c.OperatingStartHour && hour < c.OperatingEndHour
}

type FacilityInput struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Address     string    `json:"address" binding:"required"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Amenities   []string  `json:"amenities"`
	Photos      []string  `json:"photos"`
	Policies    []string  `json:"policies"`
	VenueType   VenueType `json:"venue_type" binding:"required"`
}

type CourtInput struct {
	Name               string    `json:"name" binding:"required"`
	SportType          SportType `json:"sport_type" binding:"required"`
	PricePerHour       float64   `json:"price_per_hour" binding:"required,gte=0"`
	OperatingStartHour int       `json:"operating_start_hour" binding:"min=0,max=24"`
	OperatingEndHour   int       `json:"operating_end_hour" binding:"min=0,max=24"`
	IsActive           *bool     `json:"is_active"`
}

type ApprovalInput struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}
