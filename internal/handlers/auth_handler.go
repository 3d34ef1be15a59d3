package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rateport/store-ratings/internal/audit"
	"github.com/rateport/store-ratings/internal/config"
	"github.com/rateport/store-ratings/internal/httperr"
	"github.com/rateport/store-ratings/internal/httpresp"
	"github.com/rateport/store-ratings/internal/middleware"
	"github.com/rateport/store-ratings/internal/models"
	"github.com/rateport/store-ratings/internal/token"
	"github.com/rateport/store-ratings/internal/validators"
)

const bcryptCost = 10

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
	slog   *slog.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, ad *audit.Dispatcher, sl *slog.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: ad, slog: sl}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type userProfile struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Address string `json:"address"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validators.Registration(req.Name, req.Email, req.Password, req.Address); len(errs) > 0 {
		httperr.Fields(c, errs)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		h.slog.Error("register: email lookup failed", "err", err)
		httperr.Internal(c)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "User already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.slog.Error("register: hash failed", "err", err)
		httperr.Internal(c)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Address:      req.Address,
		Role:         models.RoleUser,
	}

	if err := h.db.Create(&user).Error; err != nil {
		h.slog.Error("register: create failed", "err", err)
		httperr.Internal(c)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Created(c, gin.H{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	var errs []httperr.FieldError
	if !validators.IsEmailValid(req.Email) {
		errs = append(errs, httperr.FieldError{Path: "email", Msg: "Please provide a valid email"})
	}
	if req.Password == "" {
		errs = append(errs, httperr.FieldError{Path: "password", Msg: "Password is required"})
	}
	if len(errs) > 0 {
		httperr.Fields(c, errs)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Uniform failure for unknown email and wrong password.
	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.BadRequest(c, "Invalid credentials")
			return
		}
		h.slog.Error("login: lookup failed", "err", err)
		httperr.Internal(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.BadRequest(c, "Invalid credentials")
		return
	}

	signed, err := token.Issue(&user, h.config.JWTSecret)
	if err != nil {
		h.slog.Error("login: token issue failed", "err", err)
		httperr.Internal(c)
		return
	}

	httpresp.OK(c, gin.H{
		"token": signed,
		"user": userProfile{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
			Address: user.Address,
		},
	})
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "Access token required")
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	var errs []httperr.FieldError
	if req.CurrentPassword == "" {
		errs = append(errs, httperr.FieldError{Path: "currentPassword", Msg: "Current password is required"})
	}
	errs = append(errs, validators.NewPassword(req.NewPassword)...)
	if len(errs) > 0 {
		httperr.Fields(c, errs)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.BadRequest(c, "Current password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		h.slog.Error("update-password: hash failed", "err", err)
		httperr.Internal(c)
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("password_hash", string(hashed)).Error; err != nil {
		h.slog.Error("update-password: update failed", "err", err)
		httperr.Internal(c)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "password_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Message(c, "Password updated successfully")
}
