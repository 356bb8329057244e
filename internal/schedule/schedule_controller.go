package schedule

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/middleware"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/pkg/utils"
)

const dateLayout = "2006-01-02"

type ScheduleController struct {
	repo         ScheduleRepository
	facilities   facility.FacilityRepository
	availability *AvailabilityService
	generator    *SlotGenerator
	slotMinutes  int
}

// NewScheduleController creates a new schedule controller
func NewScheduleController(repo ScheduleRepository, facilities facility.FacilityRepository, defaultSlotMinutes int) *ScheduleController {
	return &ScheduleController{
		repo:         repo,
		facilities:   facilities,
		availability: NewAvailabilityService(repo, facilities),
		generator:    NewSlotGenerator(repo, facilities),
		slotMinutes:  defaultSlotMinutes,
	}
}

// canManageCourt resolves the court's facility and checks the caller owns it
// or is an admin.
func (c *ScheduleController) canManageCourt(ctx *gin.Context, courtID uint) (*facility.Court, bool) {
	court, err := c.facilities.GetCourtByID(courtID)
	if err != nil {
		utils.NotFoundJSON(ctx, "court")
		return nil, false
	}

	fac, err := c.facilities.GetFacilityByID(court.FacilityID)
	if err != nil {
		utils.NotFoundJSON(ctx, "facility")
		return nil, false
	}

	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return nil, false
	}
	role, err := middleware.GetRoleFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return nil, false
	}
	if fac.OwnerID != userID && role != profile.RoleAdmin {
		ctx.JSON(http.StatusForbidden, utils.ErrorResponse{Error: "you are not authorized to manage this court"})
		return nil, false
	}

	return court, true
}

// GetCourtAvailability godoc
// @Summary Get court availability
// @Description List a court's time slots with derived statuses for a date range
// @Tags schedule
// @Produce json
// @Param court_id path int true "Court ID"
// @Param start_date query string false "Range start (YYYY-MM-DD), defaults to today"
// @Param end_date query string false "Range end (YYYY-MM-DD), defaults to start + 6 days"
// @Success 200 {array} SlotView "Time slots"
// @Failure 400 {object} utils.ErrorResponse "Invalid date range"
// @Failure 404 {object} utils.ErrorResponse "Court not found"
// @Router /courts/{court_id}/availability [get]
func (c *ScheduleController) GetCourtAvailability(ctx *gin.Context) {
	courtID, err := strconv.ParseUint(ctx.Param("court_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid court ID")
		return
	}

	start := time.Now()
	if raw := ctx.Query("start_date"); raw != "" {
		start, err = time.Parse(dateLayout, raw)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid start_date, expected YYYY-MM-DD")
			return
		}
	}
	end := start.AddDate(0, 0, 6)
	if raw := ctx.Query("end_date"); raw != "" {
		end, err = time.Parse(dateLayout, raw)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid end_date, expected YYYY-MM-DD")
			return
		}
	}

	from, _ := DayBounds(start)
	_, to := DayBounds(end)

	views, err := c.availability.GetCourtAvailability(uint(courtID), from, to)
	if err != nil {
		switch err {
		case ErrInvalidRange:
			ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		case facility.ErrCourtNotFound:
			utils.NotFoundJSON(ctx, "court")
		default:
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch availability"})
		}
		return
	}

	ctx.JSON(http.StatusOK, views)
}

// GetFacilityTimeSlots godoc
// @Summary Get facility time slots for a day
// @Description List all slots of a facility's active courts on a date, ordered by start time
// @Tags schedule
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} SlotView "Time slots"
// @Failure 404 {object} utils.ErrorResponse "Facility not found"
// @Router /facilities/{facility_id}/timeslots [get]
func (c *ScheduleController) GetFacilityTimeSlots(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid facility ID")
		return
	}

	date := time.Now()
	if raw := ctx.Query("date"); raw != "" {
		date, err = time.Parse(dateLayout, raw)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid date, expected YYYY-MM-DD")
			return
		}
	}

	views, err := c.availability.GetFacilityTimeSlots(uint(facilityID), date)
	if err != nil {
		if err == facility.ErrFacilityNotFound {
			utils.NotFoundJSON(ctx, "facility")
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch time slots"})
		return
	}

	ctx.JSON(http.StatusOK, views)
}

// GetAvailabilitySummary godoc
// @Summary Get facility availability summary
// @Description Aggregate slot status counts for a facility over a date range
// @Tags schedule
// @Produce json
// @Param facility_id path int true "Facility ID"
// @Param start_date query string false "Range start (YYYY-MM-DD), defaults to today"
// @Param end_date query string false "Range end (YYYY-MM-DD), defaults to start"
// @Success 200 {object} AvailabilitySummary "Summary"
// @Failure 404 {object} utils.ErrorResponse "Facility not found"
// @Router /facilities/{facility_id}/availability-summary [get]
func (c *ScheduleController) GetAvailabilitySummary(ctx *gin.Context) {
	facilityID, err := strconv.ParseUint(ctx.Param("facility_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid facility ID")
		return
	}

	start := time.Now()
	if raw := ctx.Query("start_date"); raw != "" {
		start, err = time.Parse(dateLayout, raw)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid start_date, expected YYYY-MM-DD")
			return
		}
	}
	end := start
	if raw := ctx.Query("end_date"); raw != "" {
		end, err = time.Parse(dateLayout, raw)
		if err != nil {
			utils.BadRequestJSON(ctx, "invalid end_date, expected YYYY-MM-DD")
			return
		}
	}

	from, _ := DayBounds(start)
	_, to := DayBounds(end)

	summary, err := c.availability.GetAvailabilitySummary(uint(facilityID), from, to)
	if err != nil {
		switch err {
		case ErrInvalidRange:
			ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		case facility.ErrFacilityNotFound:
			utils.NotFoundJSON(ctx, "facility")
		default:
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to compute summary"})
		}
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// GenerateSlots godoc
// @Summary Generate time slots for a court
// @Description Bulk-create slots over a date range from the court's operating hours; existing slots are skipped
// @Tags schedule
// @Accept json
// @Produce json
// @Param court_id path int true "Court ID"
// @Param input body GenerateSlotsInput true "Generation parameters"
// @Success 201 {object} GenerateResult "Generation outcome"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 403 {object} utils.ErrorResponse "Not the facility owner"
// @Failure 404 {object} utils.ErrorResponse "Court not found"
// @Security BearerAuth
// @Router /owner/courts/{court_id}/slots/generate [post]
func (c *ScheduleController) GenerateSlots(ctx *gin.Context) {
	courtID, err := strconv.ParseUint(ctx.Param("court_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid court ID")
		return
	}

	var input GenerateSlotsInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	if _, ok := c.canManageCourt(ctx, uint(courtID)); !ok {
		return
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid end_date, expected YYYY-MM-DD")
		return
	}

	duration := input.DurationMinutes
	if duration == 0 {
		duration = c.slotMinutes
	}

	result, err := c.generator.GenerateSlots(uint(courtID), startDate, endDate, duration)
	if err != nil {
		switch err {
		case ErrInvalidDuration, ErrInvalidRange, ErrCourtInactive:
			ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to generate slots"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// CreateSlot godoc
// @Summary Create a single time slot
// @Description Create one slot on a court; rejected when it overlaps an existing slot
// @Tags schedule
// @Accept json
// @Produce json
// @Param court_id path int true "Court ID"
// @Param input body TimeSlotInput true "Slot interval"
// @Success 201 {object} TimeSlot "Created slot"
// @Failure 400 {object} utils.ErrorResponse "Invalid interval"
// @Failure 409 {object} utils.ErrorResponse "Overlapping slot"
// @Security BearerAuth
// @Router /owner/courts/{court_id}/slots [post]
func (c *ScheduleController) CreateSlot(ctx *gin.Context) {
	courtID, err := strconv.ParseUint(ctx.Param("court_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid court ID")
		return
	}

	var input TimeSlotInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}
	if !input.EndTime.After(input.StartTime) {
		utils.BadRequestJSON(ctx, "end_time must be after start_time")
		return
	}

	if _, ok := c.canManageCourt(ctx, uint(courtID)); !ok {
		return
	}

	slot := &TimeSlot{
		CourtID:   uint(courtID),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	if err := c.repo.CreateSlot(slot); err != nil {
		if err == ErrSlotOverlap {
			utils.ConflictJSON(ctx, "slot overlaps an existing slot")
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to create slot"})
		return
	}

	ctx.JSON(http.StatusCreated, slot)
}

// SetMaintenance godoc
// @Summary Toggle a slot's maintenance block
// @Description Block or unblock a slot for maintenance; blocked slots cannot be booked
// @Tags schedule
// @Accept json
// @Produce json
// @Param slot_id path int true "Slot ID"
// @Param input body MaintenanceInput true "Maintenance state"
// @Success 200 {object} TimeSlot "Updated slot"
// @Failure 404 {object} utils.ErrorResponse "Slot not found"
// @Security BearerAuth
// @Router /owner/slots/{slot_id}/maintenance [patch]
func (c *ScheduleController) SetMaintenance(ctx *gin.Context) {
	slotID, err := strconv.ParseUint(ctx.Param("slot_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid slot ID")
		return
	}

	var input MaintenanceInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	slot, err := c.repo.GetSlotByID(uint(slotID))
	if err != nil {
		utils.NotFoundJSON(ctx, "slot")
		return
	}

	if _, ok := c.canManageCourt(ctx, slot.CourtID); !ok {
		return
	}

	slot.IsMaintenanceBlocked = input.Blocked
	if input.Blocked {
		slot.MaintenanceReason = input.Reason
	} else {
		slot.MaintenanceReason = ""
	}

	if err := c.repo.UpdateSlot(slot); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to update slot"})
		return
	}

	ctx.JSON(http.StatusOK, slot)
}

// DeleteSlot godoc
// @Summary Delete a time slot
// @Description Remove a slot; refused while a confirmed booking references it
// @Tags schedule
// @Produce json
// @Param slot_id path int true "Slot ID"
// @Success 200 {object} utils.SuccessResponse "Slot deleted"
// @Failure 404 {object} utils.ErrorResponse "Slot not found"
// @Failure 409 {object} utils.ErrorResponse "Slot has a confirmed booking"
// @Security BearerAuth
// @Router /owner/slots/{slot_id} [delete]
func (c *ScheduleController) DeleteSlot(ctx *gin.Context) {
	slotID, err := strconv.ParseUint(ctx.Param("slot_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid slot ID")
		return
	}

	slot, err := c.repo.GetSlotByID(uint(slotID))
	if err != nil {
		utils.NotFoundJSON(ctx, "slot")
		return
	}

	if _, ok := c.canManageCourt(ctx, slot.CourtID); !ok {
		return
	}

	if err := c.repo.DeleteSlot(slot.ID); err != nil {
		if err == ErrSlotHasBooking {
			utils.ConflictJSON(ctx, "slot has a confirmed booking")
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to delete slot"})
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "slot deleted successfully", nil)
}
