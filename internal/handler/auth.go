package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

type registerReq struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	DisplayName     string `json:"display_name" binding:"max=64"`
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernameRe.MatchString(req.Username) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username must be 3-20 letters, digits or underscores")
		return
	}

	if !isStrongPassword(req.Password) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password must be 8-32 characters with upper, lower and digit")
		return
	}

	if req.Password != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "passwords do not match")
		return
	}

	// case-insensitive uniqueness
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check username")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		// every user starts with an empty profile
		return tx.Create(&models.Profile{UserID: user.ID, Currency: "INR"}).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create user")
		return
	}

	util.Success(c, util.Response{
		"message": "registered",
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
		},
	})
}

// isStrongPassword: 8-32 characters with upper, lower and digit.
func isStrongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 32 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong username or password")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		}
		return
	}

	now := time.Now()

	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account locked, try again later")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		// five straight failures lock the account for ten minutes
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			lockUntil := now.Add(10 * time.Minute)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		_ = h.DB.Save(&user).Error
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong username or password")
		return
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginIP = c.ClientIP()
	user.LastLoginAt = &now
	_ = h.DB.Save(&user).Error

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(h.TokenTTL),
	}
	if err := h.DB.Create(&session).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create session")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, session.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
		},
	})
}

// Logout revokes the session behind the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if user := currentUser(c); user == nil {
		return
	}

	sessionID, _ := c.Get("sessionID")
	id, _ := sessionID.(string)
	if id != "" {
		_ = h.DB.Model(&models.Session{}).
			Where("id = ?", id).
			Update("revoked", true).Error
	}

	util.Success(c, util.Response{
		"message": "logged out",
	})
}
