package venue

import (
	"errors"

	"gorm.io/gorm"

	"github.com/KrishKoria/odoo-final/internal/facility"
)

// VenueRepository runs the pushdown phase of venue queries: everything that
// filters on stored columns happens here, derived values are computed by the
// service on the rows this returns.
type VenueRepository interface {
	ListApproved(filters VenueFilters) ([]facility.Facility, error)
	GetApprovedWithCourts(id uint) (*facility.Facility, error)
	PopularVenues(limit int) ([]facility.Facility, error)
	SportsCategories() ([]SportCategory, error)
}

type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

// ListApproved returns every approved facility matching the pushdown filters
// with its active courts preloaded. Pagination is deliberately absent here:
// price sorting and price filtering depend on derived values, so the service
// paginates after transformation.
func (r *venueRepository) ListApproved(filters VenueFilters) ([]facility.Facility, error) {
	query := r.db.Model(&facility.Facility{}).
		Preload("Courts", "is_active = ?", true).
		Where("status = ?", facility.StatusApproved)

	if filters.VenueType != "" {
		query = query.Where("venue_type = ?", filters.VenueType)
	}
	if filters.Location != "" {
		query = query.Where("address ILIKE ?", "%"+filters.Location+"%")
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("(name ILIKE ? OR address ILIKE ? OR description ILIKE ?)", pattern, pattern, pattern)
	}
	if filters.MinRating > 0 {
		query = query.Where("rating >= ?", filters.MinRating)
	}
	if filters.SportType != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM courts WHERE courts.facility_id = facilities.id AND courts.sport_type = ? AND courts.is_active = true AND courts.deleted_at IS NULL)",
			filters.SportType,
		)
	}

	var facilities []facility.Facility
	err := query.Order("rating DESC, review_count DESC, id ASC").Find(&facilities).Error
	return facilities, err
}

func (r *venueRepository) GetApprovedWithCourts(id uint) (*facility.Facility, error) {
	var fac facility.Facility
	err := r.db.
		Preload("Courts", "is_active = ?", true).
		Where("id = ? AND status = ?", id, facility.StatusApproved).
		First(&fac).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &fac, nil
}

func (r *venueRepository) PopularVenues(limit int) ([]facility.Facility, error) {
	var facilities []facility.Facility
	err := r.db.Model(&facility.Facility{}).
		Preload("Courts", "is_active = ?", true).
		Where("status = ?", facility.StatusApproved).
		Order("rating DESC, review_count DESC, id ASC").
		Limit(limit).
		Find(&facilities).Error
	return facilities, err
}

// SportsCategories counts approved venues per sport across active courts.
func (r *venueRepository) SportsCategories() ([]SportCategory, error) {
	var categories []SportCategory
	err := r.db.Table("courts").
		Select("courts.sport_type AS sport_type, COUNT(DISTINCT courts.facility_id) AS venue_count").
		Joins("JOIN facilities ON facilities.id = courts.facility_id").
		Where("facilities.status = ? AND facilities.deleted_at IS NULL", facility.StatusApproved).
		Where("courts.is_active = true AND courts.deleted_at IS NULL").
		Group("courts.sport_type").
		Order("venue_count DESC").
		Scan(&categories).Error
	return categories, err
}
