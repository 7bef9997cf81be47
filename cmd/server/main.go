package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	documentapp "github.com/rently/backend/internal/application/document"
	leasingapp "github.com/rently/backend/internal/application/leasing"
	lettingapp "github.com/rently/backend/internal/application/letting"
	notificationapp "github.com/rently/backend/internal/application/notification"
	reportapp "github.com/rently/backend/internal/application/report"
	"github.com/rently/backend/internal/domain/notification"
	"github.com/rently/backend/internal/infrastructure/config"
	"github.com/rently/backend/internal/infrastructure/logger"
	"github.com/rently/backend/internal/infrastructure/mail"
	"github.com/rently/backend/internal/infrastructure/persistence"
	"github.com/rently/backend/internal/infrastructure/printing"
	"github.com/rently/backend/internal/infrastructure/scheduler"
	"github.com/rently/backend/internal/interfaces/http/handler"
	"github.com/rently/backend/internal/interfaces/http/middleware"
	"github.com/rently/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Rently Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	landlordRepo := persistence.NewGormLandlordRepository(db.DB)
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Initialize notifier
	var notifier notification.Notifier
	if cfg.Mail.Enabled {
		client, err := mail.NewClient(&cfg.Mail, log)
		if err != nil {
			log.Fatal("Failed to initialize mail client", zap.Error(err))
		}
		notifier = client
		log.Info("Mail notifier enabled", zap.String("from", cfg.Mail.FromAddress))
	} else {
		notifier = mail.NewNoopNotifier(log)
	}

	// Initialize PDF rendering
	templateEngine, err := printing.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to initialize template engine", zap.Error(err))
	}
	var renderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		renderer, err = printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			NoSandbox:      true,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		log.Info("PDF rendering enabled")
	} else {
		renderer = printing.NewNoopRenderer()
	}

	// Initialize application services
	tenantService := lettingapp.NewTenantService(tenantRepo, propertyRepo, leaseRepo, log)
	propertyService := lettingapp.NewPropertyService(propertyRepo, landlordRepo, tenantRepo, log)
	landlordService := lettingapp.NewLandlordService(landlordRepo, propertyRepo, log)
	leaseService := leasingapp.NewLeaseService(tenantRepo, leaseRepo, log)
	paymentService := leasingapp.NewPaymentService(paymentRepo, leaseRepo, tenantRepo, propertyRepo, log)
	dashboardService := reportapp.NewDashboardService(tenantRepo, propertyRepo, landlordRepo, leaseRepo, paymentRepo, log)
	triggerService := notificationapp.NewTriggerService(notificationRepo, leaseRepo, paymentRepo, tenantRepo, propertyRepo, notifier, log)
	documentService := documentapp.NewDocumentService(tenantRepo, propertyRepo, landlordRepo, leaseRepo, paymentRepo, templateEngine, renderer, log)

	// Initialize notification scan scheduler
	var triggerScheduler *scheduler.TriggerScheduler
	if cfg.Scheduler.Enabled {
		var scanLock scheduler.ScanLock
		redisLock, err := scheduler.NewRedisScanLock(cfg.Redis, cfg.Scheduler.LockTTL)
		if err != nil {
			log.Warn("Redis unavailable, falling back to local scan lock", zap.Error(err))
			scanLock = scheduler.NewLocalScanLock()
		} else {
			defer func() {
				if err := redisLock.Close(); err != nil {
					log.Error("Error closing redis scan lock", zap.Error(err))
				}
			}()
			scanLock = redisLock
		}
		triggerScheduler = scheduler.NewTriggerScheduler(cfg.Scheduler, triggerService, scanLock, log)
		if err := triggerScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		log.Info("Notification scheduler started",
			zap.Duration("scan_interval", cfg.Scheduler.ScanInterval),
		)
	}

	// Set Gin mode based on environment
	switch cfg.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// Setup HTTP engine and middleware
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	middleware.SetupValidator()

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewTenantHandler(tenantService, leaseService, paymentService)).
		Register(handler.NewPropertyHandler(propertyService)).
		Register(handler.NewLandlordHandler(landlordService)).
		Register(handler.NewLeaseHandler(leaseService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewReportHandler(dashboardService)).
		Register(handler.NewNotificationHandler(triggerService)).
		Register(handler.NewDocumentHandler(documentService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if triggerScheduler != nil {
		if err := triggerScheduler.Stop(ctx); err != nil {
			log.Error("Scheduler shutdown failed", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
