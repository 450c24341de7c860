package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"hostel/config"
	"hostel/database"
	"hostel/logger"
	"hostel/middleware"
	"hostel/router"
	"hostel/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title 宿舍合租记账 API
// @version 1.0
// @description 宿舍成员通过加入码组成房间，记录共享或个人消费，查看结算、谁欠谁和类别汇总
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 5000 或 :5000")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println("hostel ledger v" + version)
		return
	}

	// 本地开发时从 .env 加载环境变量，文件不存在则忽略
	_ = godotenv.Load()

	// 加载配置（内置配置 + 可选的外部配置 + 环境变量）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
	}

	flush, err := logger.Init(cfg.Log.Level, cfg.Log.Format, "hostel")
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer flush()

	zap.L().Info("配置加载完成", zap.Any("config", cfg.Summary()))

	// 初始化账本存储
	store, err := database.NewStore(cfg)
	if err != nil {
		zap.L().Fatal("存储初始化失败", zap.Error(err))
	}

	// 初始化 JWT
	middleware.InitJWT(cfg)

	// 启用邮件时重置账期会发送结算单
	var mailer service.StatementMailer
	if emailService := service.NewEmailService(&cfg.Email); emailService.Enabled() {
		mailer = emailService
		zap.L().Info("月度结算单邮件已启用", zap.Strings("report_to", cfg.Email.ReportTo))
	}

	// 设置路由
	r := router.SetupRouter(cfg, store, mailer)

	zap.L().Info("宿舍记账服务已启动",
		zap.String("api", fmt.Sprintf("http://localhost%s/api/", cfg.Server.Port)),
		zap.String("swagger", fmt.Sprintf("http://localhost%s/swagger/index.html", cfg.Server.Port)),
		zap.String("metrics", fmt.Sprintf("http://localhost%s/metrics", cfg.Server.Port)))

	if err := r.Run(cfg.Server.Port); err != nil {
		zap.L().Fatal("服务器启动失败", zap.Error(err))
	}
}
