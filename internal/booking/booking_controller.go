package booking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/middleware"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/internal/schedule"
	"github.com/KrishKoria/odoo-final/pkg/utils"
)

// facilityResolver is the slice of the facility repository cancellation needs
// to decide whether the caller owns the booking's facility.
type facilityResolver interface {
	GetFacilityByID(id uint) (*facility.Facility, error)
}

type BookingController struct {
	repo       BookingRepository
	facilities facilityResolver
}

// NewBookingController creates a new booking controller
func NewBookingController(repo BookingRepository, facilities facilityResolver) *BookingController {
	return &BookingController{repo: repo, facilities: facilities}
}

func parsePagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// CreateBooking godoc
// @Summary Book a time slot
// @Description Claim an available slot for the authenticated player; exactly one of any set of concurrent attempts succeeds
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingInput true "Slot to book"
// @Success 201 {object} Booking "Booking confirmed"
// @Failure 400 {object} utils.ErrorResponse "Slot unavailable or in the past"
// @Failure 404 {object} utils.ErrorResponse "Slot not found"
// @Failure 409 {object} utils.ErrorResponse "Slot already booked"
// @Security BearerAuth
// @Router /bookings [post]
func (c *BookingController) CreateBooking(ctx *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	var input CreateBookingInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := c.repo.AttemptBooking(userID, input.TimeSlotID, time.Now())
	if err != nil {
		switch err {
		case schedule.ErrSlotNotFound:
			utils.NotFoundJSON(ctx, "time slot")
		case ErrSlotConflict:
			utils.ConflictJSON(ctx, err.Error())
		case ErrSlotUnavailable, ErrSlotInPast:
			ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to create booking"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, booking)
}

// canOverrideCancellation reports whether the caller may cancel bookings they
// did not make: admins always, and owners for bookings at their own facility.
func canOverrideCancellation(facilities facilityResolver, b *Booking, userID uint, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	fac, err := facilities.GetFacilityByID(b.FacilityID)
	return err == nil && fac.OwnerID == userID
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Cancel a confirmed booking before its slot starts; the slot becomes bookable again. The facility's owner and admins may cancel any booking, including in-progress ones
// @Tags bookings
// @Produce json
// @Param booking_id path int true "Booking ID"
// @Success 200 {object} utils.SuccessResponse "Booking cancelled"
// @Failure 403 {object} utils.ErrorResponse "Not the booking's player"
// @Failure 404 {object} utils.ErrorResponse "Booking not found"
// @Failure 409 {object} utils.ErrorResponse "Booking is no longer cancellable"
// @Security BearerAuth
// @Router /bookings/{booking_id} [delete]
func (c *BookingController) CancelBooking(ctx *gin.Context) {
	bookingID, err := strconv.ParseUint(ctx.Param("booking_id"), 10, 32)
	if err != nil {
		utils.BadRequestJSON(ctx, "invalid booking ID")
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

	booking, err := c.repo.GetBookingByID(uint(bookingID))
	if err != nil {
		utils.NotFoundJSON(ctx, "booking")
		return
	}

	privileged := canOverrideCancellation(c.facilities, booking, userID, role == profile.RoleAdmin)
	if err := VetCancellation(booking, userID, privileged, time.Now()); err != nil {
		switch err {
		case ErrNotBookingOwner:
			ctx.JSON(http.StatusForbidden, utils.ErrorResponse{Error: err.Error()})
		default:
			utils.ConflictJSON(ctx, err.Error())
		}
		return
	}

	if err := c.repo.CancelBooking(booking.ID); err != nil {
		if err == ErrNotCancellable {
			utils.ConflictJSON(ctx, err.Error())
			return
		}
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to cancel booking"})
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "booking cancelled successfully", nil)
}

// GetMyBookings godoc
// @Summary List my bookings
// @Description List the authenticated player's bookings, newest first, optionally filtered by status
// @Tags bookings
// @Produce json
// @Param status query string false "Status filter" Enums(CONFIRMED, CANCELLED, COMPLETED)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse "Bookings"
// @Security BearerAuth
// @Router /bookings/me [get]
func (c *BookingController) GetMyBookings(ctx *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	status := BookingStatus(ctx.Query("status"))
	switch status {
	case "", StatusConfirmed, StatusCancelled, StatusCompleted:
	default:
		utils.BadRequestJSON(ctx, "invalid status filter")
		return
	}

	page, limit := parsePagination(ctx)
	bookings, total, err := c.repo.GetPlayerBookings(userID, status, time.Now(), page, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch bookings"})
		return
	}

	utils.PaginatedJSON(ctx, bookings, page, limit, total)
}

// GetOwnerBookings godoc
// @Summary List bookings for my facilities
// @Description List bookings across every facility the authenticated owner manages
// @Tags bookings
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} utils.PaginatedResponse "Bookings"
// @Security BearerAuth
// @Router /owner/bookings [get]
func (c *BookingController) GetOwnerBookings(ctx *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	page, limit := parsePagination(ctx)
	bookings, total, err := c.repo.GetOwnerBookings(userID, page, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to fetch bookings"})
		return
	}

	utils.PaginatedJSON(ctx, bookings, page, limit, total)
}

// SweepCompleted godoc
// @Summary Mark passed bookings completed
// @Description Persist COMPLETED on confirmed bookings whose slot has ended
// @Tags bookings
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Number of bookings updated"
// @Security BearerAuth
// @Router /admin/bookings/sweep [post]
func (c *BookingController) SweepCompleted(ctx *gin.Context) {
	updated, err := c.repo.MarkCompleted(time.Now())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to sweep bookings"})
		return
	}

	utils.SuccessJSON(ctx, http.StatusOK, "sweep completed", gin.H{"updated": updated})
}
