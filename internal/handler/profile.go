package handler

import (
	"net/http"
	"strings"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProfileHandler serves the per-user preferences record.
type ProfileHandler struct {
	DB *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var profile models.Profile
	if err := h.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// older users may predate the profile row; create on demand
			profile = models.Profile{UserID: user.ID, Currency: "INR"}
			if err := h.DB.Create(&profile).Error; err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create profile")
				return
			}
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load profile")
			return
		}
	}

	util.Success(c, util.Response{
		"profile": gin.H{
			"full_name":      profile.FullName,
			"currency":       profile.Currency,
			"monthly_income": util.FormatPaise(profile.MonthlyIncomePaise),
		},
	})
}

type updateProfileReq struct {
	FullName      string `json:"full_name" binding:"max=128"`
	DisplayName   string `json:"display_name" binding:"max=64"`
	Currency      string `json:"currency"`
	MonthlyIncome string `json:"monthly_income"`
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency != "" && !util.ValidCurrency(req.Currency) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "currency must be a 3-letter code")
		return
	}

	var incomePaise int64
	if req.MonthlyIncome != "" {
		p, err := util.ParsePaise(req.MonthlyIncome)
		if err != nil || p < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid monthly income")
			return
		}
		incomePaise = p
	}

	var profile models.Profile
	if err := h.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load profile")
			return
		}
		profile = models.Profile{UserID: user.ID, Currency: "INR"}
	}

	profile.FullName = strings.TrimSpace(req.FullName)
	if req.Currency != "" {
		profile.Currency = req.Currency
	}
	if req.MonthlyIncome != "" {
		profile.MonthlyIncomePaise = incomePaise
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save profile")
		return
	}

	if req.DisplayName != "" {
		user.DisplayName = strings.TrimSpace(req.DisplayName)
		if err := h.DB.Save(user).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save display name")
			return
		}
	}

	util.Success(c, util.Response{
		"message": "profile updated",
	})
}

type changePasswordReq struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "wrong current password")
		return
	}

	if !isStrongPassword(req.NewPassword) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password must be 8-32 characters with upper, lower and digit")
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "passwords do not match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("password_hash", string(hash)).Error; err != nil {
			return err
		}
		// force re-login everywhere
		return tx.Model(&models.Session{}).Where("user_id = ?", user.ID).
			Update("revoked", true).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to change password")
		return
	}

	util.Success(c, util.Response{
		"message": "password changed, please log in again",
	})
}
