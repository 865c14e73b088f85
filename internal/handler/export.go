package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes the user's transactions out as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Date", "Direction", "Amount", "Account", "Category", "Note"}

type exportRow struct {
	Date      string
	Direction string
	Amount    string
	Account   string
	Category  string
	Note      string
}

func (h *ExportHandler) rows(userID uint) ([]exportRow, error) {
	var txns []models.Transaction
	if err := h.DB.Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&txns).Error; err != nil {
		return nil, err
	}

	var accounts []models.Account
	if err := h.DB.Select("id", "name").Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, err
	}
	accountNames := make(map[uint]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}

	var categories []models.Category
	if err := h.DB.Select("id", "name").
		Where("is_system = ? OR user_id = ?", true, userID).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	categoryNames := make(map[uint]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}

	rows := make([]exportRow, 0, len(txns))
	for _, t := range txns {
		account, ok := accountNames[t.AccountID]
		if !ok {
			account = "Unknown"
		}
		category := "Uncategorized"
		if t.CategoryID != nil {
			if name, ok := categoryNames[*t.CategoryID]; ok {
				category = name
			}
		}
		rows = append(rows, exportRow{
			Date:      t.OccurredAt.Format("2006-01-02"),
			Direction: string(t.Direction),
			Amount:    util.FormatPaise(t.AmountPaise),
			Account:   account,
			Category:  category,
			Note:      t.Note,
		})
	}
	return rows, nil
}

// ExportCSV streams all of the user's transactions as a CSV download.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	rows, err := h.rows(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	// UTF-8 BOM so spreadsheet apps detect the encoding.
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{r.Date, r.Direction, r.Amount, r.Account, r.Category, r.Note})
	}
}

// ExportXLSX builds an XLSX workbook of the user's transactions.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	rows, err := h.rows(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Direction)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Account)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Note)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 18)
	f.SetColWidth(sheetName, "E", "E", 18)
	f.SetColWidth(sheetName, "F", "F", 32)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write workbook")
	}
}
