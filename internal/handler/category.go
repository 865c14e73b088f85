package handler

import (
	"net/http"
	"strings"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves user categories plus the shared system presets.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryResp struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Direction models.Direction `json:"direction"`
	ParentID  *uint            `json:"parent_id,omitempty"`
	IsSystem  bool             `json:"is_system"`
	Icon      string           `json:"icon,omitempty"`
	Color     string           `json:"color,omitempty"`
	Keywords  string           `json:"keywords,omitempty"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{
		ID:        cat.ID,
		Name:      cat.Name,
		Direction: cat.Direction,
		ParentID:  cat.ParentID,
		IsSystem:  cat.IsSystem,
		Icon:      cat.Icon,
		Color:     cat.Color,
		Keywords:  cat.Keywords,
	}
}

// ListCategories returns system presets plus the user's own, optionally
// filtered by direction.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	q := h.DB.Where("is_system = ? OR user_id = ?", true, user.ID)
	if d := models.Direction(c.Query("direction")); d != "" {
		if !d.ValidForCategory() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "direction must be income or expense")
			return
		}
		q = q.Where("direction = ?", d)
	}

	var categories []models.Category
	if err := q.Order("is_system DESC, name ASC").Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list categories")
		return
	}

	items := make([]categoryResp, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryResp(&categories[i]))
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

type categoryReq struct {
	Name      string `json:"name" binding:"required,max=64"`
	Direction string `json:"direction" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	Icon      string `json:"icon" binding:"max=32"`
	Color     string `json:"color" binding:"max=16"`
	Keywords  string `json:"keywords" binding:"max=512"`
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	direction := models.Direction(req.Direction)
	if !direction.ValidForCategory() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "direction must be income or expense")
		return
	}

	if req.ParentID != nil {
		var parent models.Category
		if err := h.DB.Where("id = ? AND (is_system = ? OR user_id = ?)", *req.ParentID, true, user.ID).
			First(&parent).Error; err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parent category not found")
			return
		}
	}

	category := models.Category{
		UserID:    user.ID,
		Name:      strings.TrimSpace(req.Name),
		Direction: direction,
		ParentID:  req.ParentID,
		Icon:      req.Icon,
		Color:     req.Color,
		Keywords:  req.Keywords,
	}

	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create category")
		return
	}

	util.Success(c, util.Response{
		"category": toCategoryResp(&category),
	})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	direction := models.Direction(req.Direction)
	if !direction.ValidForCategory() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "direction must be income or expense")
		return
	}

	// system presets are read-only
	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ? AND is_system = ?", id, user.ID, false).
		First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load category")
		}
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Direction = direction
	category.ParentID = req.ParentID
	category.Icon = req.Icon
	category.Color = req.Color
	category.Keywords = req.Keywords

	if err := h.DB.Save(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save category")
		return
	}

	util.Success(c, util.Response{
		"category": toCategoryResp(&category),
	})
}

// DeleteCategory removes a user category. Dependent transaction, budget
// and subscription links are nulled, never cascaded.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ? AND is_system = ?", id, user.ID, false).
		First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load category")
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.Transaction{}, &models.Budget{}, &models.Subscription{}} {
			if err := tx.Model(m).Where("category_id = ? AND user_id = ?", category.ID, user.ID).
				Update("category_id", nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Category{}).Where("parent_id = ?", category.ID).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete category")
		return
	}

	util.Success(c, util.Response{"message": "category deleted"})
}
