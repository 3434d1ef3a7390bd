package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"labbudget/config"
	"labbudget/database"
	"labbudget/logger"
	"labbudget/middleware"
	"labbudget/router"
	"labbudget/service"

	"go.uber.org/zap"
)

// @title 實驗室經費規劃 API
// @version 1.0
// @description 計畫預算、支出與規劃、實驗室金庫與學生帳戶、廠商寄放與筆記
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "1.0.0"

var (
	configFile  string
	port        string
	exportFile  string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部設定檔路徑（可選）")
	flag.StringVar(&configFile, "c", "", "外部設定檔路徑（簡寫）")
	flag.StringVar(&port, "port", "", "監聽埠，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "監聽埠（簡寫）")
	flag.StringVar(&exportFile, "export", "", "把全部資料匯出成 Excel 檔後結束，如: backup.xlsx")
	flag.BoolVar(&showVersion, "version", false, "顯示版本資訊")
	flag.BoolVar(&showVersion, "v", false, "顯示版本資訊（簡寫）")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("實驗室經費規劃 v%s\n", version)
		return
	}

	boot := logger.Bootstrap()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		boot.Sugar().Fatalf("載入設定失敗: %v", err)
	}

	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
	}

	log, err := logger.Init(cfg)
	if err != nil {
		boot.Sugar().Fatalf("初始化日誌失敗: %v", err)
	}
	defer log.Sync()
	s := zap.S()

	config.PrintConfig()

	store, err := database.Init(cfg)
	if err != nil {
		s.Fatalf("儲存初始化失敗: %v", err)
	}
	ledger := service.NewLedger(store)

	if exportFile != "" {
		if err := exportWorkbook(ledger, exportFile); err != nil {
			s.Fatalf("匯出失敗: %v", err)
		}
		s.Infof("已匯出至 %s", exportFile)
		return
	}

	middleware.InitJWT(cfg)

	r, err := router.SetupRouter(cfg, ledger)
	if err != nil {
		s.Fatalf("設定路由失敗: %v", err)
	}

	s.Info("==========================================")
	s.Info("  實驗室經費規劃已啟動")
	s.Info("==========================================")
	s.Infof("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	s.Infof("  API:      http://localhost%s/api/v1/", cfg.Server.Port)
	s.Infof("  Metrics:  http://localhost%s/metrics", cfg.Server.Port)
	s.Info("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		s.Fatalf("伺服器啟動失敗: %v", err)
	}
}

func exportWorkbook(ledger *service.Ledger, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ledger.ExportWorkbook(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
