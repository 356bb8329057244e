package review

import (
	"github.com/KrishKoria/odoo-final/config"
	"github.com/KrishKoria/odoo-final/internal/facility"
	mw "github.com/KrishKoria/odoo-final/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterReviewRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewReviewRepository(db)
	controller := NewReviewController(repo, facility.NewFacilityRepository(db))

	// Public routes
	router.GET("/facilities/:facility_id/reviews", controller.GetFacilityReviews)
	router.GET("/facilities/:facility_id/rating-summary", controller.GetRatingSummary)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.POST("/facilities/:facility_id/reviews", controller.CreateReview)
		authenticated.PUT("/facilities/:facility_id/reviews", controller.UpdateReview)
		authenticated.DELETE("/reviews/:review_id", controller.DeleteReview)
	}
}
