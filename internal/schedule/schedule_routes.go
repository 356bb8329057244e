package schedule

import (
	"github.com/KrishKoria/odoo-final/config"
	"github.com/KrishKoria/odoo-final/internal/facility"
	mw "github.com/KrishKoria/odoo-final/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterScheduleRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewScheduleRepository(db)
	facilities := facility.NewFacilityRepository(db)
	controller := NewScheduleController(repo, facilities, appConfig.Booking.DefaultSlotMinutes)

	// Public routes
	router.GET("/courts/:court_id/availability", controller.GetCourtAvailability)
	router.GET("/facilities/:facility_id/timeslots", controller.GetFacilityTimeSlots)
	router.GET("/facilities/:facility_id/availability-summary", controller.GetAvailabilitySummary)

	owner := router.Group("/owner")
	owner.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), mw.OwnerOrAdmin())
	{
		owner.POST("/courts/:court_id/slots/generate", controller.GenerateSlots)
		owner.POST("/courts/:court_id/slots", controller.CreateSlot)
		owner.PATCH("/slots/:slot_id/maintenance", controller.SetMaintenance)
		owner.DELETE("/slots/:slot_id", controller.DeleteSlot)
	}
}
