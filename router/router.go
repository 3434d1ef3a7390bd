package router

import (
	"net/http"

	"labbudget/api"
	"labbudget/config"
	_ "labbudget/docs"
	"labbudget/middleware"
	"labbudget/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 設定路由
func SetupRouter(cfg *config.Config, ledger *service.Ledger) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(middleware.Metrics())

	authHandler, err := api.NewAuthHandler(cfg, ledger)
	if err != nil {
		return nil, err
	}
	projectHandler := api.NewProjectHandler(ledger)
	journalHandler := api.NewJournalHandler(ledger)
	fundsHandler := api.NewFundsHandler(ledger)
	vendorHandler := api.NewVendorHandler(ledger)
	noteHandler := api.NewNoteHandler(ledger)
	overviewHandler := api.NewOverviewHandler(ledger, service.NewEmailService(&cfg.Email))
	exportHandler := api.NewExportHandler(ledger)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimit(cfg.Auth.LoginAttempts, cfg.Auth.LoginWindowDuration()), authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// 其餘帳本路由都需要登入
		ledgerAPI := v1.Group("")
		ledgerAPI.Use(middleware.SessionAuth())
		{
			ledgerAPI.GET("/session", authHandler.Session)

			ledgerAPI.GET("/projects", projectHandler.List)
			ledgerAPI.POST("/projects", projectHandler.Create)
			ledgerAPI.GET("/projects/:index", projectHandler.Get)
			ledgerAPI.PUT("/projects/:index", projectHandler.Update)
			ledgerAPI.DELETE("/projects/:index", projectHandler.Delete)

			ledgerAPI.GET("/expenses", journalHandler.ListExpenses)
			ledgerAPI.POST("/expenses", journalHandler.AddExpense)
			ledgerAPI.PUT("/expenses/:index", journalHandler.EditExpense)
			ledgerAPI.DELETE("/expenses/:index", journalHandler.DeleteExpense)

			ledgerAPI.GET("/plans", journalHandler.ListPlans)
			ledgerAPI.POST("/plans", journalHandler.AddPlan)
			ledgerAPI.PUT("/plans/:index", journalHandler.EditPlan)
			ledgerAPI.DELETE("/plans/:index", journalHandler.DeletePlan)
			ledgerAPI.POST("/plans/:index/promote", journalHandler.PromotePlan)

			ledgerAPI.GET("/lab-cash", fundsHandler.LabCash)
			ledgerAPI.POST("/lab-cash/adjust", fundsHandler.AdjustLabCash)

			ledgerAPI.GET("/students", fundsHandler.Students)
			ledgerAPI.POST("/students", fundsHandler.AddStudent)
			ledgerAPI.PUT("/students/:index", fundsHandler.UpdateStudent)
			ledgerAPI.POST("/students/:name/actions", fundsHandler.StudentAction)

			ledgerAPI.GET("/cash-log", fundsHandler.CashLog)
			ledgerAPI.DELETE("/cash-log/:index", fundsHandler.DeleteCashLog)
			ledgerAPI.POST("/cash-log/:index/reverse", fundsHandler.ReverseCashLog)

			ledgerAPI.GET("/vendors", vendorHandler.List)
			ledgerAPI.POST("/vendors", vendorHandler.Create)
			ledgerAPI.PUT("/vendors/:index/deposit", vendorHandler.UpdateDeposit)

			ledgerAPI.GET("/notes", noteHandler.List)
			ledgerAPI.POST("/notes", noteHandler.Create)
			ledgerAPI.PUT("/notes/:index", noteHandler.Update)
			ledgerAPI.DELETE("/notes/:index", noteHandler.Delete)

			ledgerAPI.GET("/overview", overviewHandler.Get)
			ledgerAPI.POST("/overview/expiry-digest", overviewHandler.SendExpiryDigest)

			ledgerAPI.GET("/export/expenses.csv", exportHandler.ExportCSV)
			ledgerAPI.GET("/export/excel", exportHandler.ExportExcel)
		}
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r, nil
}

// CORSMiddleware CORS 跨域中介層
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
