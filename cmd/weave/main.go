package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitfantasy/weave/internal/config"
	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/handler"
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/bitfantasy/weave/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting weave service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 数据库迁移
	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	// 初始化Redis
	rdb := initRedis(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis not reachable, report cache disabled", zap.Error(err))
	}

	// 仓库、服务与处理器
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1（全部需要认证）
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		// 款号主数据
		refs := v1.Group("/references")
		{
			refs.GET("", h.Reference.ListReferences)
			refs.GET("/:id", h.Reference.GetReference)
			refs.POST("", h.Reference.CreateReference)
			refs.PUT("/:id", h.Reference.UpdateReference)
			refs.POST("/cloth-requirements", h.Reference.ClothRequirements)
		}

		// 收货批次
		receptions := v1.Group("/receptions")
		{
			receptions.GET("", h.Reception.ListReceptions)
			receptions.GET("/:id", h.Reception.GetReception)
			receptions.POST("", h.Reception.CreateReception)
			receptions.PUT("/:id", h.Reception.UpdateReception)
		}

		// 出货单
		dispatches := v1.Group("/dispatches")
		{
			dispatches.GET("", h.Dispatch.ListDispatches)
			dispatches.GET("/:id", h.Dispatch.GetDispatch)
			dispatches.POST("", h.Dispatch.CreateDispatch)
		}

		// 销售订单
		orders := v1.Group("/orders")
		{
			orders.GET("", h.Order.ListOrders)
			orders.GET("/:id", h.Order.GetOrder)
			orders.POST("", h.Order.CreateOrder)
			orders.PUT("/:id", h.Order.UpdateOrder)
		}

		// 库存台账（现算）
		stock := v1.Group("/stock")
		{
			stock.GET("", h.Stock.GetLedger)
			stock.GET("/:reference_id", h.Stock.GetStock)
		}

		// 生产进度
		production := v1.Group("/production")
		{
			production.GET("", h.Production.ListProduction)
			production.PUT("/stage", h.Production.UpdateStage)
			production.POST("/bulk-save", h.Production.BulkSaveProduction)
		}

		// 履约报表
		reports := v1.Group("/reports")
		{
			reports.GET("/campaigns/:campaign_id", h.Fulfillment.CampaignReport)
			reports.GET("/references/:reference_id", h.Fulfillment.ReferenceReport)
			reports.GET("/clients/:client_id", h.Fulfillment.ClientReport)
		}

		// 外协交期
		deliveries := v1.Group("/deliveries")
		{
			deliveries.GET("", h.Delivery.ListDeliveries)
			deliveries.POST("/bulk-save", h.Delivery.BulkSaveDeliveries)
			deliveries.PUT("/:id/delivered", h.Delivery.MarkDelivered)
			deliveries.DELETE("/:id", h.Delivery.DeleteDelivery)
		}
	}
}
