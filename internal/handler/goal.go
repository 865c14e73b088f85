package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/stats"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoalHandler serves savings goal CRUD.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

type goalReq struct {
	Name       string `json:"name" binding:"required,max=64"`
	Target     string `json:"target" binding:"required"`
	Current    string `json:"current"`
	TargetDate string `json:"target_date"`
	Completed  *bool  `json:"completed"`
}

type goalResp struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Target     string     `json:"target"`
	Current    string     `json:"current"`
	Progress   float64    `json:"progress"`
	TargetDate *time.Time `json:"target_date,omitempty"`
	Completed  bool       `json:"completed"`
}

func toGoalResp(g *models.Goal) goalResp {
	return goalResp{
		ID:         g.ID,
		Name:       g.Name,
		Target:     util.FormatPaise(g.TargetPaise),
		Current:    util.FormatPaise(g.CurrentPaise),
		Progress:   stats.GoalProgressPercent(g.TargetPaise, g.CurrentPaise),
		TargetDate: g.TargetDate,
		Completed:  g.Completed,
	}
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var goals []models.Goal
	if err := h.DB.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list goals")
		return
	}

	items := make([]goalResp, 0, len(goals))
	for i := range goals {
		items = append(items, toGoalResp(&goals[i]))
	}

	util.Success(c, util.Response{"items": items})
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	targetPaise, err := util.ParseAmountPaise(req.Target)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid target")
		return
	}

	var currentPaise int64
	if req.Current != "" {
		p, err := util.ParsePaise(req.Current)
		if err != nil || p < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid current amount")
			return
		}
		currentPaise = p
	}

	goal := models.Goal{
		UserID:       user.ID,
		Name:         strings.TrimSpace(req.Name),
		TargetPaise:  targetPaise,
		CurrentPaise: currentPaise,
	}
	if req.TargetDate != "" {
		t, err := util.ParseDate(req.TargetDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid target date")
			return
		}
		goal.TargetDate = &t
	}

	if err := h.DB.Create(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create goal")
		return
	}

	util.Success(c, util.Response{"goal": toGoalResp(&goal)})
}

// UpdateGoal edits a goal. Completion is set only by the caller; it is
// never inferred from progress reaching target.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&goal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "goal not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load goal")
		}
		return
	}

	targetPaise, err := util.ParseAmountPaise(req.Target)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid target")
		return
	}
	goal.TargetPaise = targetPaise

	if req.Current != "" {
		p, err := util.ParsePaise(req.Current)
		if err != nil || p < 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid current amount")
			return
		}
		goal.CurrentPaise = p
	}

	goal.Name = strings.TrimSpace(req.Name)
	if req.TargetDate != "" {
		t, err := util.ParseDate(req.TargetDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid target date")
			return
		}
		goal.TargetDate = &t
	}
	if req.Completed != nil {
		goal.Completed = *req.Completed
	}

	if err := h.DB.Save(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save goal")
		return
	}

	util.Success(c, util.Response{"goal": toGoalResp(&goal)})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Goal{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete goal")
		return
	}

	util.Success(c, util.Response{"message": "goal deleted"})
}
