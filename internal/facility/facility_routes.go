package facility

import (
	"github.com/KrishKoria/odoo-final/config"
	mw "github.com/KrishKoria/odoo-final/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterFacilityRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewFacilityRepository(db)
	controller := NewFacilityController(repo, appConfig)

	jwtSecret := appConfig.JWT.AccessTokenSecret

	// Public routes
	public := router.Group("/facilities")
	{
		public.GET("/:facility_id/courts", controller.GetFacilityCourts)
	}

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		owner := authenticated.Group("/owner")
		owner.Use(mw.OwnerOrAdmin())
		{
			owner.POST("/facilities", controller.CreateFacility)
			owner.GET("/facilities", controller.GetMyFacilities)
			owner.PUT("/facilities/:facility_id", controller.UpdateFacility)
			owner.POST("/facilities/:facility_id/courts", controller.AddCourt)
			owner.PUT("/facilities/:facility_id/courts/:court_id", controller.UpdateCourt)
		}

		admin := authenticated.Group("/admin")
		admin.Use(mw.AdminOnly())
		{
			admin.GET("/facilities/pending", controller.GetPendingFacilities)
			admin.POST("/facilities/:facility_id/review", controller.ReviewFacility)
		}
	}
}
