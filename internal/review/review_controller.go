package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/middleware"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/pkg/utils"
)

type ReviewController struct {
	repo       ReviewRepository
	facilities facility.FacilityRepository
}

// NewReviewController creates a new review controller
func NewReviewController(repo ReviewRepository, facilities facility.FacilityRepository) *ReviewController {
	return &ReviewController{repo: repo, facilities: facilities}
}

// CreateReview godoc
// @Summary Review a facility
// @Description Create the authenticated player's review for an approved facility; one review per player per facility
// @Tags reviews
// @Accept json
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param review body ReviewInput true "Rating and comment"
// @Success 201 {object} FacilityReview "Review created"
// @Failure 404 {object} utils.ErrorResponse "Facility not found"
// @Failure 409 {object} utils.ErrorResponse "Already reviewed"
// @Security BearerAuth
// @Router /facilities/{facility_id}/reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid facility ID")
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	var input ReviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := c.facilities.GetApprovedFacilityByID(uint(facilityID)); err != nil {
		utils.NotFoundJSON(ctx, "facility")
		return
	}

	review := &FacilityReview{
		FacilityID: uint(facilityID),
		PlayerID:   userID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := c.repo.CreateReview(review); err != nil {
		if err == ErrAlreadyRated {
			utils.ConflictJSON(ctx, err.Error())
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to create review"})
		return
	}

	if _, _, err := c.repo.RecomputeRating(uint(facilityID)); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to update facility rating"})
		return
	}

	ctx.JSON(http.StatusCreated, review)
}

// UpdateReview godoc
// @Summary Update my review
// @Description Edit the authenticated player's review of a facility
// @Tags reviews
// @Accept json
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param review body ReviewInput true "Rating and comment"
// @Success 200 {object} FacilityReview "Review updated"
// @Failure 404 {object} utils.ErrorResponse "Review not found"
// @Security BearerAuth
// @Router /facilities/{facility_id}/reviews [put]
func (c *ReviewController) UpdateReview(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid facility ID")
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	var input ReviewInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	review, err := c.repo.GetPlayerReview(uint(facilityID), userID)
	if err != nil {
		utils.NotFoundJSON(ctx, "review")
		return
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := c.repo.UpdateReview(review); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to update review"})
		return
	}

	if _, _, err := c.repo.RecomputeRating(uint(facilityID)); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to update facility rating"})
		return
	}

	ctx.JSON(http.StatusOK, review)
}

// DeleteReview godoc
// @Summary Delete a review
// @Description Remove a review; players may delete their own, admins any
// @Tags reviews
// @Produce json
// @Param review_id path int true "Review ID"
// @Success 200 {object} utils.SuccessResponse "Review deleted"
// @Failure 403 {object} utils.ErrorResponse "Not the review's player"
// @Failure 404 {object} utils.ErrorResponse "Review not found"
// @Security BearerAuth
// @Router /reviews/{review_id} [delete]
func (c *ReviewController) DeleteReview(ctx *gin.Context) {
	reviewID, err := strconv.ParseUint(ctx.Param("review_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid review ID")
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}
	role, err := middleware.GetRoleFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	review, err := c.repo.GetReviewByID(uint(reviewID))
	if err != nil {
		utils.NotFoundJSON(ctx, "review")
		return
	}

	if review.PlayerID != userID && role != profile.RoleAdmin {
		ctx.JSON(http.StatusForbidden, utils.ErrorResponse{Error: ErrNotReviewOwner.Error()})
		return
	}

	if err := c.repo.DeleteReview(review.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to delete review"})
		return
	}

	if _, _, err := c.repo.RecomputeRating(review.FacilityID); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to update facility rating"})
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "review deleted successfully", nil)
}

// GetFacilityReviews godoc
// @Summary List facility reviews
// @Description Paginated reviews for a facility, newest first
// @Tags reviews
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse "Reviews"
// @Router /facilities/{facility_id}/reviews [get]
func (c *ReviewController) GetFacilityReviews(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid facility ID")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	reviews, total, err := c.repo.ListFacilityReviews(uint(facilityID), page, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch reviews"})
		return
	}

	utils.PaginatedJSON(ctx, reviews, page, limit, total)
}

// GetRatingSummary godoc
// @Summary Get a facility's rating summary
// @Description Average rating and star distribution, recomputed from the review rows
// @Tags reviews
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Success 200 {object} RatingSummary "Summary"
// @Router /facilities/{facility_id}/rating-summary [get]
func (c *ReviewController) GetRatingSummary(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid facility ID")
		return
	}

	counts, err := c.repo.RatingCounts(uint(facilityID))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch rating summary"})
		return
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	ctx.JSON(http.StatusOK, RatingSummary{
		Average:      AverageFromCounts(counts),
		TotalReviews: total,
		Distribution: DistributionFromCounts(counts),
	})
}
