package booking

import (
	"github.com/KrishKoria/odoo-final/config"
	"github.com/KrishKoria/odoo-final/internal/facility"
	mw "github.com/KrishKoria/odoo-final/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterBookingRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewBookingRepository(db)
	facilities := facility.NewFacilityRepository(db)
	controller := NewBookingController(repo, facilities)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.POST("/bookings", controller.CreateBooking)
		authenticated.GET("/bookings/me", controller.GetMyBookings)
		authenticated.DELETE("/bookings/:booking_id", controller.CancelBooking)

		owner := authenticated.Group("/owner")
		owner.Use(mw.OwnerOrAdmin())
		{
			owner.GET("/bookings", controller.GetOwnerBookings)
		}

		admin := authenticated.Group("/admin")
		admin.Use(mw.AdminOnly())
		{
			admin.POST("/bookings/sweep", controller.SweepCompleted)
		}
	}
}
