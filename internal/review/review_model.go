package review

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrAlreadyRated   = errors.New("you have already reviewed this facility")
	ErrNotReviewOwner = errors.New("review belongs to another player")
)

// FacilityReview is one player's rating of a facility. The unique index
// enforces one review per player per facility; edits go through update.
type FacilityReview struct {
	gorm.Model
	FacilityID uint   `gorm:"not null;uniqueIndex:idx_review_facility_player" json:"facility_id"`
	PlayerID   uint   `gorm:"not null;uniqueIndex:idx_review_facility_player" json:"player_id"`
	Rating     int    `gorm:"not null" json:"rating"`
	Comment    string `json:"comment"`
}

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewDetail joins a review with the player's display name.
type ReviewDetail struct {
	FacilityReview
	PlayerName string `gorm:"column:player_name" json:"player_name"`
}

// RatingBucket is one bar of the rating distribution.
type RatingBucket struct {
	Rating     int     `json:"rating"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// RatingSummary is the aggregate view of a facility's reviews. Average is
// recomputed from the review rows, not read from the cached column.
type RatingSummary struct {
	Average      float64        `json:"average"`
	TotalReviews int64          `json:"total_reviews"`
	Distribution []RatingBucket `json:"distribution"`
}
