package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/KrishKoria/odoo-final/config"
	"github.com/KrishKoria/odoo-final/internal/auth"
	"github.com/KrishKoria/odoo-final/internal/booking"
	"github.com/KrishKoria/odoo-final/internal/facility"
	mw "github.com/KrishKoria/odoo-final/internal/middleware"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/internal/review"
	"github.com/KrishKoria/odoo-final/internal/schedule"
	"github.com/KrishKoria/odoo-final/internal/venue"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if appConfig.App.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	auth.RegisterAuthRoutes(api, db, appConfig)

	authMW := mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db)
	adminOnly := mw.AdminOnly()
	profile.RegisterProfileRoutes(api, db, appConfig, authMW, adminOnly)

	facility.RegisterFacilityRoutes(api, db, appConfig)
	schedule.RegisterScheduleRoutes(api, db, appConfig)
	booking.RegisterBookingRoutes(api, db, appConfig)
	venue.RegisterVenueRoutes(api, db)
	review.RegisterReviewRoutes(api, db, appConfig)

	return r
}
