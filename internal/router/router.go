package router

import (
	"github.com/elizabethangel02241/finance-tracker/internal/config"
	"github.com/elizabethangel02241/finance-tracker/internal/handler"
	"github.com/elizabethangel02241/finance-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the API surface onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.ActivityMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/auth/logout", authHandler.Logout)

	profileHandler := handler.NewProfileHandler(db)
	protected.GET("/profile", profileHandler.GetProfile)
	protected.POST("/profile", profileHandler.UpdateProfile)
	protected.POST("/profile/password", profileHandler.ChangePassword)

	accountHandler := handler.NewAccountHandler(db, cfg.App.DefaultCurrency)
	protected.GET("/accounts", accountHandler.ListAccounts)
	protected.POST("/accounts", accountHandler.CreateAccount)
	protected.PUT("/accounts/:id", accountHandler.UpdateAccount)
	protected.DELETE("/accounts/:id", accountHandler.DeleteAccount)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.ListCategories)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.PUT("/categories/:id", categoryHandler.UpdateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	txnHandler := handler.NewTransactionHandler(db)
	protected.GET("/transactions", txnHandler.ListTransactions)
	protected.POST("/transactions", txnHandler.CreateTransaction)
	protected.PUT("/transactions/:id", txnHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", txnHandler.DeleteTransaction)

	budgetHandler := handler.NewBudgetHandler(db)
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.PUT("/budgets/:id", budgetHandler.UpdateBudget)
	protected.DELETE("/budgets/:id", budgetHandler.DeleteBudget)
	protected.GET("/budgets/status", budgetHandler.BudgetStatusList)

	goalHandler := handler.NewGoalHandler(db)
	protected.GET("/goals", goalHandler.ListGoals)
	protected.POST("/goals", goalHandler.CreateGoal)
	protected.PUT("/goals/:id", goalHandler.UpdateGoal)
	protected.DELETE("/goals/:id", goalHandler.DeleteGoal)

	subHandler := handler.NewSubscriptionHandler(db)
	protected.GET("/subscriptions", subHandler.ListSubscriptions)
	protected.GET("/subscriptions/upcoming", subHandler.UpcomingSubscriptions)
	protected.POST("/subscriptions", subHandler.CreateSubscription)
	protected.PUT("/subscriptions/:id", subHandler.UpdateSubscription)
	protected.DELETE("/subscriptions/:id", subHandler.DeleteSubscription)

	loanHandler := handler.NewLoanHandler(db)
	protected.GET("/loans", loanHandler.ListLoans)
	protected.POST("/loans", loanHandler.CreateLoan)
	protected.PUT("/loans/:id", loanHandler.UpdateLoan)
	protected.DELETE("/loans/:id", loanHandler.DeleteLoan)
	protected.GET("/loans/:id/progress", loanHandler.LoanProgress)

	invHandler := handler.NewInvestmentHandler(db)
	protected.GET("/investments", invHandler.ListInvestments)
	protected.POST("/investments", invHandler.CreateInvestment)
	protected.PUT("/investments/:id", invHandler.UpdateInvestment)
	protected.DELETE("/investments/:id", invHandler.DeleteInvestment)

	receiptHandler := handler.NewReceiptHandler(db, cfg.Upload.Dir)
	protected.GET("/receipts", receiptHandler.ListReceipts)
	protected.POST("/receipts", receiptHandler.UploadReceipt)
	protected.DELETE("/receipts/:id", receiptHandler.DeleteReceipt)

	dashboardHandler := handler.NewDashboardHandler(db)
	protected.GET("/dashboard", dashboardHandler.Dashboard)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
