package review

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/KrishKoria/odoo-final/internal/facility"
)

// AverageFromCounts computes the mean rating from per-star counts, 0 when
// there are no reviews. The result is rounded to two decimals.
func AverageFromCounts(counts map[int]int64) float64 {
	var sum, total int64
	for rating, count := range counts {
		sum += int64(rating) * count
		total += count
	}
	if total == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(total)*100) / 100
}

// DistributionFromCounts turns per-star counts into the five-bucket
// distribution, highest star first, with percentages of the total.
func DistributionFromCounts(counts map[int]int64) []RatingBucket {
	var total int64
	for _, count := range counts {
		total += count
	}

	buckets := make([]RatingBucket, 0, 5)
	for rating := 5; rating >= 1; rating-- {
		bucket := RatingBucket{Rating: rating, Count: counts[rating]}
		if total > 0 {
			bucket.Percentage = math.Round(float64(bucket.Count)/float64(total)*10000) / 100
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// ReviewRepository interface defines all database operations for reviews
type ReviewRepository interface {
	CreateReview(review *FacilityReview) error
	GetReviewByID(id uint) (*FacilityReview, error)
	GetPlayerReview(facilityID, playerID uint) (*FacilityReview, error)
	UpdateReview(review *FacilityReview) error
	DeleteReview(id uint) error
	ListFacilityReviews(facilityID uint, page, limit int) ([]ReviewDetail, int64, error)
	RatingCounts(facilityID uint) (map[int]int64, error)
	// RecomputeRating re-derives the facility's average rating and review
	// count from the review rows and persists them onto the facility cache
	// columns. Calling it twice in a row is a no-op.
	RecomputeRating(facilityID uint) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(review *FacilityReview) error {
	if err := r.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyRated
		}
		return err
	}
	return nil
}

func (r *reviewRepository) GetReviewByID(id uint) (*FacilityReview, error) {
	var review FacilityReview
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetPlayerReview(facilityID, playerID uint) (*FacilityReview, error) {
	var review FacilityReview
	err := r.db.
		Where("facility_id = ? AND player_id = ?", facilityID, playerID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) UpdateReview(review *FacilityReview) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) DeleteReview(id uint) error {
	return r.db.Delete(&FacilityReview{}, id).Error
}

// ListFacilityReviews lists reviews newest first with the reviewer's name.
func (r *reviewRepository) ListFacilityReviews(facilityID uint, page, limit int) ([]ReviewDetail, int64, error) {
	query := r.db.Table("facility_reviews").
		Select("facility_reviews.*, player_profiles.name AS player_name").
		Joins("JOIN player_profiles ON player_profiles.user_id = facility_reviews.player_id").
		Where("facility_reviews.facility_id = ? AND facility_reviews.deleted_at IS NULL", facilityID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []ReviewDetail
	err := query.
		Order("facility_reviews.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) RatingCounts(facilityID uint) (map[int]int64, error) {
	type row struct {
		Rating int
		Count  int64
	}
	var rows []row
	err := r.db.Model(&FacilityReview{}).
		Select("rating, COUNT(*) AS count").
		Where("facility_id = ?", facilityID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}
	return counts, nil
}

func (r *reviewRepository) RecomputeRating(facilityID uint) (float64, int64, error) {
	var average float64
	var total int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		counts := make(map[int]int64)
		type row struct {
			Rating int
			Count  int64
		}
		var rows []row
		err := tx.Model(&FacilityReview{}).
			Select("rating, COUNT(*) AS count").
			Where("facility_id = ?", facilityID).
			Group("rating").
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			counts[row.Rating] = row.Count
			total += row.Count
		}
		average = AverageFromCounts(counts)

		return tx.Model(&facility.Facility{}).
			Where("id = ?", facilityID).
			Updates(map[string]interface{}{
				"rating":       average,
				"review_count": total,
			}).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return average, total, nil
}
