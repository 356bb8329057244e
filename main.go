package main

import (
	"log"

	"github.com/KrishKoria/odoo-final/config"
	_ "github.com/KrishKoria/odoo-final/docs"
	"github.com/KrishKoria/odoo-final/internal/auth"
	"github.com/KrishKoria/odoo-final/internal/booking"
	"github.com/KrishKoria/odoo-final/internal/facility"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/internal/review"
	"github.com/KrishKoria/odoo-final/internal/schedule"
	"github.com/KrishKoria/odoo-final/routes"
)

// @title QuickCourt REST API
// @version 1.0
// @description Sports facility booking platform: venues, courts, time slots and bookings.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&profile.PlayerProfile{}, &auth.PendingRegistration{},
		&facility.Facility{}, &facility.Court{},
		&schedule.TimeSlot{}, &booking.Booking{},
		&review.FacilityReview{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
