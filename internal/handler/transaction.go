package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elizabethangel02241/finance-tracker/internal/models"
	"github.com/elizabethangel02241/finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler serves transaction CRUD and the filtered list with
// its summary block.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

type createTransactionReq struct {
	AccountID  uint   `json:"account_id" binding:"required"`
	CategoryID *uint  `json:"category_id"`
	Direction  string `json:"direction" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	Note       string `json:"note" binding:"max=255"`
	Source     string `json:"source"`
	OccurredAt string `json:"occurred_at"`
}

type transactionResp struct {
	ID           uint                     `json:"id"`
	AccountID    uint                     `json:"account_id"`
	AccountName  string                   `json:"account_name"`
	CategoryID   *uint                    `json:"category_id,omitempty"`
	CategoryName string                   `json:"category_name"`
	Direction    models.Direction         `json:"direction"`
	Amount       string                   `json:"amount"`
	AmountPaise  int64                    `json:"amount_paise"`
	Currency     string                   `json:"currency"`
	Note         string                   `json:"note"`
	Source       models.TransactionSource `json:"source"`
	OccurredAt   time.Time                `json:"occurred_at"`
	CreatedAt    time.Time                `json:"created_at"`
}

// toTransactionResp flattens a transaction into its view-model shape,
// with "Uncategorized"/"Unknown" fallbacks for absent links.
func toTransactionResp(t *models.Transaction, accounts map[uint]string, categories map[uint]string) transactionResp {
	accountName := accounts[t.AccountID]
	if accountName == "" {
		accountName = "Unknown"
	}
	categoryName := "Uncategorized"
	if t.CategoryID != nil {
		if name := categories[*t.CategoryID]; name != "" {
			categoryName = name
		}
	}
	return transactionResp{
		ID:           t.ID,
		AccountID:    t.AccountID,
		AccountName:  accountName,
		CategoryID:   t.CategoryID,
		CategoryName: categoryName,
		Direction:    t.Direction,
		Amount:       util.FormatPaise(t.AmountPaise),
		AmountPaise:  t.AmountPaise,
		Currency:     t.Currency,
		Note:         t.Note,
		Source:       t.Source,
		OccurredAt:   t.OccurredAt,
		CreatedAt:    t.CreatedAt,
	}
}

// nameMaps loads id->name lookups for the user's accounts and the
// categories visible to them.
func (h *TransactionHandler) nameMaps(userID uint) (map[uint]string, map[uint]string, error) {
	var accounts []models.Account
	if err := h.DB.Select("id", "name").Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, nil, err
	}
	accountNames := make(map[uint]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}

	var categories []models.Category
	if err := h.DB.Select("id", "name").
		Where("is_system = ? OR user_id = ?", true, userID).
		Find(&categories).Error; err != nil {
		return nil, nil, err
	}
	categoryNames := make(map[uint]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}
	return accountNames, categoryNames, nil
}

// balanceDelta is the signed effect a transaction has on its account:
// credited on income, debited on expense, none for transfers.
func balanceDelta(direction models.Direction, amountPaise int64) int64 {
	switch direction {
	case models.DirectionIncome:
		return amountPaise
	case models.DirectionExpense:
		return -amountPaise
	}
	return 0
}

// CreateTransaction inserts the row and applies the balance delta in a
// single store transaction. The delta is an arithmetic update evaluated
// at the store, so concurrent submissions cannot lose an update.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	direction := models.Direction(req.Direction)
	if !direction.ValidForTransaction() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "direction must be income, expense or transfer")
		return
	}

	source := models.TransactionSource(req.Source)
	if source == "" {
		source = models.SourceManual
	}
	if !source.Valid() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown source")
		return
	}

	amountPaise, err := util.ParseAmountPaise(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	occurredAt := time.Now()
	if req.OccurredAt != "" {
		t, err := util.ParseDate(req.OccurredAt)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date")
			return
		}
		occurredAt = t
	}

	var account models.Account
	if err := h.DB.Where("id = ? AND user_id = ?", req.AccountID, user.ID).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load account")
		}
		return
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := h.DB.Where("id = ? AND (is_system = ? OR user_id = ?)", *req.CategoryID, true, user.ID).
			First(&category).Error; err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category not found")
			return
		}
	}

	txn := models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		CategoryID:  req.CategoryID,
		Direction:   direction,
		AmountPaise: amountPaise,
		Currency:    account.Currency,
		Note:        strings.TrimSpace(req.Note),
		Source:      source,
		OccurredAt:  occurredAt,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		if delta := balanceDelta(direction, amountPaise); delta != 0 {
			return tx.Model(&models.Account{}).
				Where("id = ? AND user_id = ?", account.ID, user.ID).
				UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	accountNames, categoryNames, err := h.nameMaps(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load names")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&txn, accountNames, categoryNames),
	})
}

// ListTransactions supports date-range, direction, account and category
// filters plus pagination and sorting, and returns an income/expense
// summary over the whole filtered set.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	var (
		startTime time.Time
		endTime   time.Time
		hasStart  bool
		hasEnd    bool
	)
	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start must be YYYY-MM-DD")
			return
		}
		startTime, hasStart = t, true
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end must be YYYY-MM-DD")
			return
		}
		// end is inclusive: compare against the next midnight
		endTime, hasEnd = t.Add(24*time.Hour), true
	}

	// default to the last 30 days when no range is given
	if !hasStart && !hasEnd {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		startTime = today.AddDate(0, 0, -29)
		endTime = today.AddDate(0, 0, 1)
		hasStart, hasEnd = true, true
	}

	direction := models.Direction(c.Query("direction"))
	if direction != "" && !direction.ValidForTransaction() {
		direction = ""
	}

	orderBy := "occurred_at DESC, id DESC"
	switch c.DefaultQuery("sort", "date_desc") {
	case "date_asc":
		orderBy = "occurred_at ASC, id ASC"
	case "amount_desc":
		orderBy = "amount_paise DESC, id DESC"
	case "amount_asc":
		orderBy = "amount_paise ASC, id ASC"
	}

	base := h.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)
	if hasStart {
		base = base.Where("occurred_at >= ?", startTime)
	}
	if hasEnd {
		base = base.Where("occurred_at < ?", endTime)
	}
	if direction != "" {
		base = base.Where("direction = ?", direction)
	}
	if s := c.Query("account_id"); s != "" {
		if id, err := strconv.Atoi(s); err == nil && id > 0 {
			base = base.Where("account_id = ?", id)
		}
	}
	if s := c.Query("category_id"); s != "" {
		if id, err := strconv.Atoi(s); err == nil && id > 0 {
			base = base.Where("category_id = ?", id)
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to count transactions")
		return
	}

	var txns []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Order(orderBy).
		Limit(size).
		Offset(offset).
		Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list transactions")
		return
	}

	accountNames, categoryNames, err := h.nameMaps(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load names")
		return
	}

	items := make([]transactionResp, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResp(&txns[i], accountNames, categoryNames))
	}

	// summary over the whole filtered set, not just the current page
	var all []models.Transaction
	if err := base.Session(&gorm.Session{}).Find(&all).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to summarize transactions")
		return
	}

	var incomePaise, expensePaise int64
	for i := range all {
		switch all[i].Direction {
		case models.DirectionIncome:
			incomePaise += all[i].AmountPaise
		case models.DirectionExpense:
			expensePaise += all[i].AmountPaise
		}
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
		"summary": gin.H{
			"income_paise":  incomePaise,
			"income":        util.FormatPaise(incomePaise),
			"expense_paise": expensePaise,
			"expense":       util.FormatPaise(expensePaise),
			"net_paise":     incomePaise - expensePaise,
			"net":           util.FormatPaise(incomePaise - expensePaise),
		},
	})
}

type updateTransactionReq struct {
	// absent leaves the category unchanged; an explicit 0 clears it
	CategoryID *uint  `json:"category_id"`
	Note       string `json:"note" binding:"max=255"`
	OccurredAt string `json:"occurred_at"`
}

// UpdateTransaction edits category, note and date. Amount, direction
// and account are immutable after insert because the account balance
// moves only on insertion; edits that change the money flow are done as
// a delete plus a fresh insert.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var txn models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transaction")
		}
		return
	}

	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			txn.CategoryID = nil
		} else {
			var category models.Category
			if err := h.DB.Where("id = ? AND (is_system = ? OR user_id = ?)", *req.CategoryID, true, user.ID).
				First(&category).Error; err != nil {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category not found")
				return
			}
			txn.CategoryID = req.CategoryID
		}
	}
	txn.Note = strings.TrimSpace(req.Note)
	if req.OccurredAt != "" {
		t, err := util.ParseDate(req.OccurredAt)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date")
			return
		}
		txn.OccurredAt = t
	}

	if err := h.DB.Save(&txn).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save transaction")
		return
	}

	accountNames, categoryNames, err := h.nameMaps(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load names")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&txn, accountNames, categoryNames),
	})
}

// DeleteTransaction removes the row. The account balance is not
// re-adjusted: it moves only on insertion.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Transaction{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete transaction")
		return
	}

	util.Success(c, util.Response{"message": "transaction deleted"})
}
