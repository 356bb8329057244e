package profile

import (
	"github.com/KrishKoria/odoo-final/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterProfileRoutes wires profile endpoints. The auth and admin-gate
// middlewares are passed in by the router to avoid an import cycle with the
// middleware package, which depends on this package for the Role type.
func RegisterProfileRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, authMW, adminOnly gin.HandlerFunc) {
	repo := NewProfileRepository(db)
	controller := NewProfileController(repo, appConfig)

	authenticated := router.Group("/")
	authenticated.Use(authMW)
	{
		authenticated.GET("/profile", controller.GetMyProfile)
		authenticated.PUT("/profile", controller.UpdateMyProfile)

		admin := authenticated.Group("/admin")
		admin.Use(adminOnly)
		{
			admin.GET("/profiles", controller.ListProfiles)
			admin.POST("/profiles/:user_id/ban", controller.BanUser)
			admin.POST("/profiles/:user_id/unban", controller.UnbanUser)
		}
	}
}
