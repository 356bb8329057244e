package facility

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KrishKoria/odoo-final/config"
	"github.com/KrishKoria/odoo-final/internal/middleware"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/pkg/utils"
	"github.com/gin-gonic/gin"
)

// FacilityController handles facility-related HTTP requests
type FacilityController struct {
	repo      FacilityRepository
	appConfig *config.Config
}

// NewFacilityController creates a new facility controller
func NewFacilityController(repo FacilityRepository, appConfig *config.Config) *FacilityController {
	return &FacilityController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// canManage reports whether the caller owns the facility or is an admin.
func canManage(ctx *gin.Context, facility *Facility) bool {
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		return false
	}
	role, err := middleware.GetRoleFromContext(ctx)
	if err != nil {
		return false
	}
	return facility.OwnerID == userID || role == profile.RoleAdmin
}

// CreateFacility godoc
// @Summary Create a new facility
// @Description Create a new facility; it starts in PENDING status until an admin approves it
// @Tags facilities
// @Accept json
// @Produce json
// @Param facility body FacilityInput true "Facility information"
// @Success 201 {object} Facility "Facility created successfully"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /owner/facilities [post]
// @Security Bearer
func (c *FacilityController) CreateFacility(ctx *gin.Context) {
	var input FacilityInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	if !input.VenueType.Valid() {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid venue type"})
		return
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	facility := &Facility{
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Amenities:   input.Amenities,
		Photos:      input.Photos,
		Policies:    input.Policies,
		VenueType:   input.VenueType,
		OwnerID:     userID,
	}

	if err := c.repo.CreateFacility(facility); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to create facility: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, facility)
}

// GetMyFacilities godoc
// @Summary Get own facilities
// @Description Get all facilities owned by the current user, including pending ones
// @Tags facilities
// @Produce json
// @Success 200 {array} Facility "List of facilities"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /owner/facilities [get]
// @Security Bearer
func (c *FacilityController) GetMyFacilities(ctx *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	facilities, err := c.repo.GetFacilitiesByOwnerID(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get facilities: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, facilities)
}

// UpdateFacility godoc
// @Summary Update facility
// @Description Update an existing facility's details
// @Tags facilities
// @Accept json
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param facility body FacilityInput true "Updated facility information"
// @Success 200 {object} Facility "Facility updated successfully"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Forbidden - not the facility owner"
// @Failure 404 {object} utils.ErrorResponse "Facility not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /owner/facilities/{facility_id} [put]
// @Security Bearer
func (c *FacilityController) UpdateFacility(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid facility ID"})
		return
	}

	var input FacilityInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	if !input.VenueType.Valid() {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid venue type"})
		return
	}

	facility, err := c.repo.GetFacilityByID(uint(facilityID))
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			utils.NotFoundJSON(ctx, "facility")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get facility: " + err.Error()})
		}
		return
	}

	if !canManage(ctx, facility) {
		ctx.JSON(http.StatusForbidden, utils.ErrorResponse{Error: "you are not authorized to update this facility"})
		return
	}

	facility.Name = input.Name
	facility.Description = input.Description
	facility.Address = input.Address
	facility.Latitude = input.Latitude
	facility.Longitude = input.Longitude
	facility.Amenities = input.Amenities
	facility.Photos = input.Photos
	facility.Policies = input.Policies
	facility.VenueType = input.VenueType

	if err := c.repo.UpdateFacility(facility); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to update facility: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, facility)
}

// AddCourt godoc
// @Summary Add court to facility
// @Description Add a new court to an existing facility
// @Tags facilities
// @Accept json
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param court body CourtInput true "Court information"
// @Success 201 {object} Court "Court added successfully"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Forbidden - not the facility owner"
// @Failure 404 {object} utils.ErrorResponse "Facility not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /owner/facilities/{facility_id}/courts [post]
// @Security Bearer
func (c *FacilityController) AddCourt(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid facility ID"})
		return
	}

	var input CourtInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	if !input.SportType.Valid() {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid sport type"})
		return
	}

	if input.OperatingStartHour >= input.OperatingEndHour {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "operating start hour must be before end hour"})
		return
	}

	facility, err := c.repo.GetFacilityByID(uint(facilityID))
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			utils.NotFoundJSON(ctx, "facility")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get facility: " + err.Error()})
		}
		return
	}

	if !canManage(ctx, facility) {
		ctx.JSON(http.StatusForbidden, utils.ErrorResponse{Error: "you are not authorized to add courts to this facility"})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	court := &Court{
		FacilityID:         uint(facilityID),
		Name:               input.Name,
		SportType:          input.SportType,
		PricePerHour:       input.PricePerHour,
		OperatingStartHour: input.OperatingStartHour,
		OperatingEndHour:   input.OperatingEndHour,
		IsActive:           isActive,
	}

	if err := c.repo.AddCourt(court); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to add court: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, court)
}

// GetFacilityCourts godoc
// @Summary Get facility courts
// @Description Get all courts for a specific facility
// @Tags facilities
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Success 200 {array} Court "List of courts"
// @Failure 400 {object} utils.ErrorResponse "Invalid facility ID"
// @Failure 404 {object} utils.ErrorResponse "Facility not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /facilities/{facility_id}/courts [get]
func (c *FacilityController) GetFacilityCourts(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid facility ID"})
		return
	}

	if _, err := c.repo.GetApprovedFacilityByID(uint(facilityID)); err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			utils.NotFoundJSON(ctx, "facility")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get facility: " + err.Error()})
		}
		return
	}

	courts, err := c.repo.GetCourtsByFacilityID(uint(facilityID), true)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get courts: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, courts)
}

// UpdateCourt godoc
// @Summary Update court
// @Description Update an existing court's details; deactivate instead of deleting to keep booking history
// @Tags facilities
// @Accept json
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param court_id path int true "Court ID"
// @Param court body CourtInput true "Updated court information"
// @Success 200 {object} Court "Court updated successfully"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 403 {object} utils.ErrorResponse "Forbidden - not the facility owner"
// @Failure 404 {object} utils.ErrorResponse "Court or facility not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /owner/facilities/{facility_id}/courts/{court_id} [put]
// @Security Bearer
func (c *FacilityController) UpdateCourt(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid facility ID"})
		return
	}

	courtID, err := strconv.ParseUint(ctx.Param("court_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid court ID"})
		return
	}

	var input CourtInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	if !input.SportType.Valid() {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid sport type"})
		return
	}

	if input.OperatingStartHour >= input.OperatingEndHour {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "operating start hour must be before end hour"})
		return
	}

	facility, err := c.repo.GetFacilityByID(uint(facilityID))
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			utils.NotFoundJSON(ctx, "facility")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get facility: " + err.Error()})
		}
		return
	}

	if !canManage(ctx, facility) {
		ctx.JSON(http.StatusForbidden, utils.ErrorResponse{Error: "you are not authorized to update courts in this facility"})
		return
	}

	court, err := c.repo.GetCourtByID(uint(courtID))
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			utils.NotFoundJSON(ctx, "court")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get court: " + err.Error()})
		}
		return
	}

	if court.FacilityID != uint(facilityID) {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "court does not belong to the specified facility"})
		return
	}

	court.Name = input.Name
	court.SportType = input.SportType
	court.PricePerHour = input.PricePerHour
	court.OperatingStartHour = input.OperatingStartHour
	court.OperatingEndHour = input.OperatingEndHour
	if input.IsActive != nil {
		court.IsActive = *input.IsActive
	}

	if err := c.repo.UpdateCourt(court); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to update court: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, court)
}

// GetPendingFacilities godoc
// @Summary List pending facilities
// @Description Get facilities awaiting admin approval (admin only)
// @Tags facilities
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Number of items per page (default: 10, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]Facility} "List of pending facilities"
// @Failure 400 {object} utils.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /admin/facilities/pending [get]
// @Security Bearer
func (c *FacilityController) GetPendingFacilities(ctx *gin.Context) {
	page := 1
	limit := 10

	if pageStr := ctx.Query("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid page parameter"})
			return
		}
		page = p
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > 100 {
			ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid limit parameter"})
			return
		}
		limit = l
	}

	facilities, totalCount, err := c.repo.GetPendingFacilities(page, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get pending facilities: " + err.Error()})
		return
	}

	utils.PaginatedJSON(ctx, facilities, page, limit, totalCount)
}

// ReviewFacility godoc
// @Summary Approve or reject a facility
// @Description Transition a pending facility to APPROVED or REJECTED (admin only)
// @Tags facilities
// @Accept json
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param decision body ApprovalInput true "Approval decision"
// @Success 200 {object} utils.SuccessResponse "Facility reviewed"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 404 {object} utils.ErrorResponse "Facility not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /admin/facilities/{facility_id}/review [post]
// @Security Bearer
func (c *FacilityController) ReviewFacility(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid facility ID"})
		return
	}

	var input ApprovalInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	status := StatusRejected
	if input.Approve {
		status = StatusApproved
	}

	if err := c.repo.UpdateFacilityStatus(uint(facilityID), status); err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			utils.NotFoundJSON(ctx, "facility")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to review facility: " + err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, utils.SuccessResponse{Message: "facility " + string(status)})
}
