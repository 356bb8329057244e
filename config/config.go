package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env         string `env:"APP_ENV" envDefault:"development"`
		Port        string `env:"PORT"    envDefault:"8080"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"quickcourt_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		AccessTokenSecret        string `env:"JWT_ACCESS_TOKEN_SECRET"  envDefault:"supersecret"`
		AccessTokenExpiryMinutes int    `env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES" envDefault:"60"`
	}
	Booking struct {
		// Default slot length used when slot generation requests omit one.
		DefaultSlotMinutes int `env:"BOOKING_DEFAULT_SLOT_MINUTES" envDefault:"60"`
	}
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

// Global appConfig instance, accessible after LoadConfig() is called via Initialize.
var appConfig *Config
var once sync.Once

// LoadConfig loads configuration from environment variables into the Config struct.
// It's designed to be called once.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}

	// --- App Configuration ---
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// --- Database Configuration ---
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "quickcourt_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// --- JWT Configuration ---
	cfg.JWT.AccessTokenSecret = getEnv("JWT_ACCESS_TOKEN_SECRET", "your-very-strong-access-secret")

	var err error
	cfg.JWT.AccessTokenExpiryMinutes, err = getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %w", err)
	}

	// --- Booking Configuration ---
	cfg.Booking.DefaultSlotMinutes, err = getEnvAsInt("BOOKING_DEFAULT_SLOT_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_DEFAULT_SLOT_MINUTES: %w", err)
	}

	// Basic validation for critical secrets
	if cfg.JWT.AccessTokenSecret == "your-very-strong-access-secret" {
		log.Println("WARNING: Using default JWT secret. Please set JWT_ACCESS_TOKEN_SECRET environment variable for production.")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	appConfig = cfg
	return cfg, nil
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	// TranslateError maps driver errors onto gorm sentinels; the booking
	// conflict guard relies on gorm.ErrDuplicatedKey.
	gormConfig := &gorm.Config{TranslateError: true}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info) // Log SQL queries in development
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	log.Println("Successfully connected to database!")
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database.
// This should be called once at the start of your application (e.g., in main.go).
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		_, err = ConnectDB(*appConfig)
		if err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It panics if the configuration has not been loaded yet.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
