package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxReceiptSize = 8 << 20 // 8 MiB

var receiptExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true,
}

// ReceiptHandler stores uploaded receipt images and their extraction
// state. Extraction itself happens out of band.
type ReceiptHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewReceiptHandler(db *gorm.DB, uploadDir string) *ReceiptHandler {
	return &ReceiptHandler{DB: db, UploadDir: uploadDir}
}

type receiptResp struct {
	ID            uint                 `json:"id"`
	FileName      string               `json:"file_name"`
	Status        models.ReceiptStatus `json:"status"`
	TransactionID *uint                `json:"transaction_id,omitempty"`
	ExtractedText string               `json:"extracted_text,omitempty"`
	CreatedAt     string               `json:"created_at"`
}

func toReceiptResp(r *models.Receipt) receiptResp {
	return receiptResp{
		ID:            r.ID,
		FileName:      r.FileName,
		Status:        r.Status,
		TransactionID: r.TransactionID,
		ExtractedText: r.ExtractedText,
		CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var receipts []models.Receipt
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&receipts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list receipts")
		return
	}

	items := make([]receiptResp, 0, len(receipts))
	for i := range receipts {
		items = append(items, toReceiptResp(&receipts[i]))
	}
	util.Success(c, util.Response{"items": items})
}

func (h *ReceiptHandler) UploadReceipt(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "missing file")
		return
	}
	if file.Size > maxReceiptSize {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "file too large")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !receiptExts[ext] {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unsupported file type")
		return
	}

	stored := filepath.Join(h.UploadDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(file, stored); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to store file")
		return
	}

	receipt := models.Receipt{
		UserID:     user.ID,
		FileName:   filepath.Base(file.Filename),
		StoredPath: stored,
		Status:     models.ReceiptPending,
	}
	if v := c.PostForm("transaction_id"); v != "" {
		var txn models.Transaction
		if err := h.DB.Where("id = ? AND user_id = ?", v, user.ID).First(&txn).Error; err != nil {
			os.Remove(stored)
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "transaction not found")
			return
		}
		receipt.TransactionID = &txn.ID
	}

	if err := h.DB.Create(&receipt).Error; err != nil {
		os.Remove(stored)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save receipt")
		return
	}

	util.Success(c, util.Response{"receipt": toReceiptResp(&receipt)})
}

func (h *ReceiptHandler) DeleteReceipt(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var receipt models.Receipt
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&receipt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "receipt not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load receipt")
		}
		return
	}

	if err := h.DB.Delete(&receipt).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete receipt")
		return
	}
	// Best effort; the row is authoritative.
	os.Remove(receipt.StoredPath)

	util.Success(c, util.Response{"message": "receipt deleted"})
}
