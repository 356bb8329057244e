package profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KrishKoria/odoo-final/config"
	"github.com/KrishKoria/odoo-final/pkg/utils"
	"github.com/gin-gonic/gin"
)

// ProfileController handles profile-related HTTP requests
type ProfileController struct {
	repo      ProfileRepository
	appConfig *config.Config
}

// NewProfileController creates a new profile controller
func NewProfileController(repo ProfileRepository, appConfig *config.Config) *ProfileController {
	return &ProfileController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// GetMyProfile godoc
// @Summary Get own profile
// @Description Get the profile of the currently authenticated user
// @Tags profiles
// @Produce json
// @Success 200 {object} PlayerProfile "Profile details"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 404 {object} utils.ErrorResponse "Profile not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /profile [get]
// @Security Bearer
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	profile, err := c.repo.GetByUserID(userID.(uint))
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.NotFoundJSON(ctx, "profile")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get profile: " + err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UpdateMyProfile godoc
// @Summary Update own profile
// @Description Update name, phone number or avatar of the current user
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body UpdateProfileInput true "Profile fields"
// @Success 200 {object} PlayerProfile "Updated profile"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Failure 404 {object} utils.ErrorResponse "Profile not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /profile [put]
// @Security Bearer
func (c *ProfileController) UpdateMyProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "unauthorized"})
		return
	}

	var input UpdateProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := c.repo.GetByUserID(userID.(uint))
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.NotFoundJSON(ctx, "profile")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to get profile: " + err.Error()})
		}
		return
	}

	if input.Name != "" {
		profile.Name = input.Name
	}
	if input.PhoneNumber != "" {
		profile.PhoneNumber = input.PhoneNumber
	}
	if input.AvatarURL != "" {
		profile.AvatarURL = input.AvatarURL
	}

	if err := c.repo.Update(profile); err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to update profile: " + err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// ListProfiles godoc
// @Summary List profiles
// @Description Get a paginated list of player profiles, optionally filtered by role (admin only)
// @Tags profiles
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Number of items per page (default: 10, max: 100)"
// @Param role query string false "Filter by role (USER, FACILITY_OWNER, ADMIN)"
// @Success 200 {object} utils.PaginatedResponse{data=[]PlayerProfile} "List of profiles"
// @Failure 400 {object} utils.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /admin/profiles [get]
// @Security Bearer
func (c *ProfileController) ListProfiles(ctx *gin.Context) {
	page, limit, ok := parsePagination(ctx)
	if !ok {
		return
	}

	role := Role(ctx.Query("role"))
	if role != "" && !role.Valid() {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid role filter"})
		return
	}

	profiles, totalCount, err := c.repo.List(page, limit, role)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to list profiles: " + err.Error()})
		return
	}

	utils.PaginatedJSON(ctx, profiles, page, limit, totalCount)
}

// BanUser godoc
// @Summary Ban a user
// @Description Ban a player profile, optionally until a given time (admin only)
// @Tags profiles
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param ban body BanInput true "Ban details"
// @Success 200 {object} utils.SuccessResponse "User banned"
// @Failure 400 {object} utils.ErrorResponse "Invalid input"
// @Failure 404 {object} utils.ErrorResponse "Profile not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /admin/profiles/{user_id}/ban [post]
// @Security Bearer
func (c *ProfileController) BanUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid user ID"})
		return
	}

	var input BanInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: err.Error()})
		return
	}

	if err := c.repo.SetBan(uint(userID), true, input.BannedUntil); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.NotFoundJSON(ctx, "profile")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to ban user: " + err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, utils.SuccessResponse{Message: "user banned successfully"})
}

// UnbanUser godoc
// @Summary Unban a user
// @Description Remove a ban from a player profile (admin only)
// @Tags profiles
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} utils.SuccessResponse "User unbanned"
// @Failure 400 {object} utils.ErrorResponse "Invalid user ID"
// @Failure 404 {object} utils.ErrorResponse "Profile not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /admin/profiles/{user_id}/unban [post]
// @Security Bearer
func (c *ProfileController) UnbanUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid user ID"})
		return
	}

	if err := c.repo.SetBan(uint(userID), false, nil); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.NotFoundJSON(ctx, "profile")
		} else {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "failed to unban user: " + err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, utils.SuccessResponse{Message: "user unbanned successfully"})
}

func parsePagination(ctx *gin.Context) (page, limit int, ok bool) {
	page = 1
	limit = 10

	if pageStr := ctx.Query("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid page parameter"})
			return 0, 0, false
		}
		page = p
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > 100 {
			ctx.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid limit parameter"})
			return 0, 0, false
		}
		limit = l
	}

	return page, limit, true
}
