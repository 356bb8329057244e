package venue

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KrishKoria/odoo-final/pkg/utils"
)

type VenueController struct {
	service *VenueService
}

// NewVenueController creates a new venue controller
func NewVenueController(service *VenueService) *VenueController {
	return &VenueController{service: service}
}

func parseFilters(ctx *gin.Context) VenueFilters {
	minRating, _ := strconv.ParseFloat(ctx.Query("min_rating"), 64)
	minPrice, _ := strconv.ParseFloat(ctx.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(ctx.Query("max_price"), 64)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return VenueFilters{
		SportType: ctx.Query("sport_type"),
		VenueType: ctx.Query("venue_type"),
		Location:  ctx.Query("location"),
		Search:    ctx.Query("search"),
		MinRating: minRating,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		SortBy:    ctx.DefaultQuery("sort_by", SortRating),
		Page:      page,
		Limit:     limit,
	}
}

// ListVenues godoc
// @Summary Browse venues
// @Description List approved venues with derived starting price and live availability; filterable and sortable
// @Tags venues
// @Produce json
// @Param sport_type query string false "Sport filter"
// @Param venue_type query string false "Venue type filter" Enums(INDOOR, OUTDOOR)
// @Param location query string false "Address substring filter"
// @Param search query string false "Name, address or description search"
// @Param min_rating query number false "Minimum rating"
// @Param min_price query number false "Minimum starting price"
// @Param max_price query number false "Maximum starting price"
// @Param sort_by query string false "Sort order" Enums(rating, price_asc, price_desc, name, availability)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse "Venues"
// @Router /venues [get]
func (c *VenueController) ListVenues(ctx *gin.Context) {
	filters := parseFilters(ctx)

	venues, total, err := c.service.ListVenues(filters, time.Now())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch venues"})
		return
	}

	utils.PaginatedJSON(ctx, venues, filters.Page, filters.Limit, total)
}

// GetVenue godoc
// @Summary Get venue details
// @Description Full read model for one approved venue, including its courts
// @Tags venues
// @Produce json
// @Param venue_id path int true "Venue ID"
// @Success 200 {object} VenueDetail "Venue"
// @Failure 404 {object} utils.ErrorResponse "Venue not found"
// @Router /venues/{venue_id} [get]
func (c *VenueController) GetVenue(ctx *gin.Context) {
	venueID, err := strconv.ParseUint(ctx.Param("venue_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid venue ID")
		return
	}

	venue, err := c.service.GetVenueDetail(uint(venueID), time.Now())
	if err != nil {
		if err == ErrVenueNotFound {
			utils.NotFoundJSON(ctx, "venue")
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch venue"})
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// GetPopularVenues godoc
// @Summary Get popular venues
// @Description Top-rated approved venues for the landing page
// @Tags venues
// @Produce json
// @Param limit query int false "Number of venues" default(6)
// @Success 200 {array} VenueListItem "Venues"
// @Router /venues/popular [get]
func (c *VenueController) GetPopularVenues(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "6"))

	venues, err := c.service.GetPopularVenues(limit, time.Now())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch popular venues"})
		return
	}

	ctx.JSON(http.StatusOK, venues)
}

// GetSportsCategories godoc
// @Summary Get sports categories
// @Description Sports offered across approved venues with venue counts
// @Tags venues
// @Produce json
// @Success 200 {array} SportCategory "Categories"
// @Router /venues/sports [get]
func (c *VenueController) GetSportsCategories(ctx *gin.Context) {
	categories, err := c.service.GetSportsCategories()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch sports categories"})
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// GetPlatformStats godoc
// @Summary Get platform statistics
// @Description Public counters: venues, sports, bookings and players
// @Tags venues
// @Produce json
// @Success 200 {object} PlatformStats "Stats"
// @Router /stats [get]
func (c *VenueController) GetPlatformStats(ctx *gin.Context) {
	stats, err := c.service.GetPlatformStats()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch platform stats"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
