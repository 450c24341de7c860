package router

import (
	"net/http"

	"hostel/api"
	"hostel/config"
	_ "hostel/docs"
	"hostel/ledger"
	"hostel/middleware"
	"hostel/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// SetupRouter 设置路由
// mailer 为空时重置账期不发送结算单
func SetupRouter(cfg *config.Config, store ledger.Store, mailer service.StatementMailer) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(zap.L()))
	r.Use(middleware.Metrics())
	r.Use(CORSMiddleware())

	roomHandler := api.NewRoomHandler(store, cfg.JWT.ExpireTime, mailer)
	expenseHandler := api.NewExpenseHandler(store)
	settlementHandler := api.NewSettlementHandler(store)
	exportHandler := api.NewExportHandler(store)
	sessionHandler := api.NewSessionHandler(store)

	apiGroup := r.Group("/api")
	{
		rooms := apiGroup.Group("/rooms")
		{
			rooms.POST("", roomHandler.Create)
			rooms.POST("/join", middleware.JoinRateLimit(cfg.RateLimit.JoinMaxAttempts, cfg.RateLimit.JoinWindow), roomHandler.Join)
			rooms.GET("/:id", roomHandler.Get)
			rooms.GET("/:id/users", roomHandler.Users)
			rooms.GET("/:id/expenses", roomHandler.Expenses)
			rooms.POST("/:id/reset", roomHandler.Reset)

			rooms.GET("/:id/summary", settlementHandler.Summary)
			rooms.GET("/:id/settlements", settlementHandler.Settlements)
			rooms.GET("/:id/categories", settlementHandler.Categories)

			rooms.GET("/:id/export/csv", exportHandler.ExportCSV)
			rooms.GET("/:id/export/xlsx", exportHandler.ExportXLSX)
		}

		expenses := apiGroup.Group("/expenses")
		{
			expenses.POST("", expenseHandler.Create)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		apiGroup.GET("/categories", expenseHandler.Categories)
		apiGroup.GET("/session", middleware.JWTAuth(), sessionHandler.Get)
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
