package auth

import (
	"github.com/KrishKoria/odoo-final/config"
	"github.com/KrishKoria/odoo-final/internal/profile"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewAuthRepository(db)
	profileRepo := profile.NewProfileRepository(db)
	controller := NewAuthController(repo, profileRepo, appConfig)

	authGroup := router.Group("/auth")
	authGroup.POST("/signup/start", controller.StartSignup)
	authGroup.POST("/register", controller.Register)
	authGroup.POST("/login", controller.Login)
}
