package venue

import (
	"github.com/KrishKoria/odoo-final/internal/booking"
	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/internal/review"
	"github.com/KrishKoria/odoo-final/internal/schedule"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterVenueRoutes(router *gin.RouterGroup, db *gorm.DB) {
	facilities := facility.NewFacilityRepository(db)
	availability := schedule.NewAvailabilityService(schedule.NewScheduleRepository(db), facilities)
	service := NewVenueService(
		NewVenueRepository(db),
		availability,
		review.NewReviewRepository(db),
		facilities,
		booking.NewBookingRepository(db),
		profile.NewProfileRepository(db),
	)
	controller := NewVenueController(service)

	venues := router.Group("/venues")
	{
		venues.GET("", controller.ListVenues)
		venues.GET("/popular", controller.GetPopularVenues)
		venues.GET("/sports", controller.GetSportsCategories)
		venues.GET("/:venue_id", controller.GetVenue)
	}
	router.GET("/stats", controller.GetPlatformStats)
}
