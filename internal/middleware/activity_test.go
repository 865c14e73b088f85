package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elizabethangel02241/finance-tracker/internal/database"
	"github.com/elizabethangel02241/finance-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func activityRouter(db *gorm.DB, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("currentUser", user)
	})
	r.Use(ActivityMiddleware(db))
	handler := func(c *gin.Context) {
		// handlers must still see the body after the middleware
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{"len": len(body)})
	}
	r.POST("/api/profile/password", handler)
	r.POST("/api/goals", handler)
	return r
}

func lastLog(t *testing.T, db *gorm.DB) models.ActivityLog {
	t.Helper()
	var log models.ActivityLog
	if err := db.Order("id DESC").First(&log).Error; err != nil {
		t.Fatalf("load log: %v", err)
	}
	return log
}

func TestActivityLogSkipsCredentialBodies(t *testing.T) {
	db := openTestDB(t)
	user := &models.User{Username: "asha", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	r := activityRouter(db, user)

	body := `{"old_password":"OldSecret1","new_password":"NewSecret2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/profile/password", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), fmt.Sprintf(`"len":%d`, len(body))) {
		t.Fatalf("handler did not receive the body: %s", w.Body.String())
	}

	log := lastLog(t, db)
	if strings.Contains(log.Action, "OldSecret1") || strings.Contains(log.Action, "NewSecret2") {
		t.Fatalf("credentials leaked into activity log: %q", log.Action)
	}
	if log.Path != "/api/profile/password" {
		t.Errorf("path = %q", log.Path)
	}
}

func TestActivityLogCapturesOrdinaryBodies(t *testing.T) {
	db := openTestDB(t)
	user := &models.User{Username: "asha", PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	r := activityRouter(db, user)

	body := `{"name":"Emergency Fund","target":"50000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	log := lastLog(t, db)
	if !strings.Contains(log.Action, "Emergency Fund") {
		t.Fatalf("body missing from activity log: %q", log.Action)
	}
}
