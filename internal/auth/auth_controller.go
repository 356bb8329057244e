package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/KrishKoria/odoo-final/config"
	"github.com/KrishKoria/odoo-final/internal/profile"
	"github.com/KrishKoria/odoo-final/pkg/token"
	"github.com/KrishKoria/odoo-final/utils"
	"github.com/gin-gonic/gin"
)

const signupTokenExpiryMinutes = 30

type AuthController struct {
	repo        AuthRepository
	profileRepo profile.ProfileRepository
	config      *config.Config
}

func NewAuthController(repo AuthRepository, profileRepo profile.ProfileRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:        repo,
		profileRepo: profileRepo,
		config:      cfg,
	}
}

func generateSignupToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// StartSignup godoc
// @Summary      Start a signup
// @Description  Record the chosen role for an email and return a signup token to complete registration with.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        signup  body  StartSignupRequest  true  "Email and chosen role"
// @Success      201  {object} StartSignupResponse "Signup token"
// @Failure      400  {object} map[string]string "Validation error or invalid role"
// @Failure      409  {object} map[string]string "User with this email already exists"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/signup/start [post]
func (ac *AuthController) StartSignup(c *gin.Context) {
	var req StartSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !req.Role.Valid() || req.Role == profile.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role; choose USER or FACILITY_OWNER"})
		return
	}

	if _, err := ac.profileRepo.GetByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	signupToken, err := generateSignupToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate signup token"})
		return
	}

	pending := &PendingRegistration{
		Token:     signupToken,
		Email:     req.Email,
		Role:      req.Role,
		ExpiresAt: time.Now().Add(signupTokenExpiryMinutes * time.Minute),
	}

	if err := ac.repo.CreatePendingRegistration(pending); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start signup: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, StartSignupResponse{
		SignupToken: pending.Token,
		ExpiresAt:   pending.ExpiresAt,
	})
}

// Register godoc
// @Summary      Register a new user
// @Description  Complete a signup started with /auth/signup/start. Consumes the signup token and creates the profile with the role chosen there.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201  {object} AuthResponse "User registered successfully, returns token and user info"
// @Failure      400  {object} map[string]string "Validation error, unknown or expired signup token"
// @Failure      409  {object} map[string]string "User with this email already exists"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if _, err := ac.profileRepo.GetByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	p := &profile.PlayerProfile{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashed,
		PhoneNumber: req.PhoneNumber,
		IsActive:    true,
	}

	if err := ac.repo.ConsumePendingRegistration(req.SignupToken, time.Now(), p); err != nil {
		switch {
		case errors.Is(err, ErrPendingNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or already used signup token"})
		case errors.Is(err, ErrPendingExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signup token has expired, start again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register: " + err.Error()})
		}
		return
	}

	accessToken, err := token.GenerateJWT(p.UserID, string(p.Role), ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{AccessToken: accessToken, User: p})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email and password, returns an access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object} AuthResponse "Logged in"
// @Failure      400  {object} map[string]string "Validation error"
// @Failure      401  {object} map[string]string "Invalid credentials"
// @Failure      403  {object} map[string]string "Account banned or inactive"
// @Failure      500  {object} map[string]string "Internal server error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	p, err := ac.profileRepo.GetByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !utils.CheckPassword(p.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !p.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
		return
	}

	if p.Banned(time.Now()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is banned"})
		return
	}

	accessToken, err := token.GenerateJWT(p.UserID, string(p.Role), ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{AccessToken: accessToken, User: p})
}
