package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	coverageapp "github.com/logistics-erp/hrm/internal/application/coverage"
	documentapp "github.com/logistics-erp/hrm/internal/application/document"
	identityapp "github.com/logistics-erp/hrm/internal/application/identity"
	orgapp "github.com/logistics-erp/hrm/internal/application/org"
	timekeepingapp "github.com/logistics-erp/hrm/internal/application/timekeeping"
	workforceapp "github.com/logistics-erp/hrm/internal/application/workforce"
	"github.com/logistics-erp/hrm/internal/infrastructure/auth"
	"github.com/logistics-erp/hrm/internal/infrastructure/cache"
	"github.com/logistics-erp/hrm/internal/infrastructure/config"
	"github.com/logistics-erp/hrm/internal/infrastructure/docgen"
	"github.com/logistics-erp/hrm/internal/infrastructure/docgen/providers"
	"github.com/logistics-erp/hrm/internal/infrastructure/logger"
	"github.com/logistics-erp/hrm/internal/infrastructure/persistence/mongodb"
	"github.com/logistics-erp/hrm/internal/infrastructure/scheduler"
	"github.com/logistics-erp/hrm/internal/infrastructure/storage"
	"github.com/logistics-erp/hrm/internal/infrastructure/telemetry"
	"github.com/logistics-erp/hrm/internal/interfaces/http/handler"
	"github.com/logistics-erp/hrm/internal/interfaces/http/middleware"
	"github.com/logistics-erp/hrm/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/event"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"

	_ "github.com/logistics-erp/hrm/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			HRM Backend API
//	@version		1.0
//	@description	Human resources and organizational management API for the logistics platform

//	@contact.name	API Support
//	@contact.url	https://github.com/logistics-erp/hrm

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

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

	log.Info("Starting HRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize OpenTelemetry providers. Both degrade to no-ops when
	// telemetry is disabled so the wiring below stays unconditional.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Assemble the MongoDB command monitor chain: command metrics first,
	// then otelmongo spans when DB tracing is on.
	var dbMonitor *event.CommandMonitor
	if cfg.Telemetry.Enabled {
		dbMetrics, err := telemetry.NewDBMetrics(
			meterProvider.Meter("hrm/mongodb"),
			telemetry.DBMonitorConfig{
				Enabled:              true,
				SlowCommandThreshold: cfg.Telemetry.DBSlowQueryThresh,
				LogStatements:        cfg.Telemetry.DBLogStatements,
			},
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize database metrics", zap.Error(err))
		}
		var next *event.CommandMonitor
		if cfg.Telemetry.DBTraceEnabled {
			next = otelmongo.NewMonitor()
		}
		dbMonitor = telemetry.NewCommandMonitor(dbMetrics, log, next)
	}

	// Initialize database connection
	db, err := mongodb.NewDatabaseWithMonitor(ctx, &cfg.Mongo, dbMonitor)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Error("Error closing MongoDB connection", zap.Error(err))
		}
	}()
	log.Info("MongoDB connected successfully")

	if err := mongodb.EnsureIndexes(ctx, db.DB); err != nil {
		log.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	// Redis backs the token blacklist and the quote cache. Startup
	// proceeds with in-memory fallbacks when it is unreachable.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory stores", zap.Error(err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis connected successfully")
	}

	// Initialize repositories
	branchRepo := mongodb.NewBranchRepository(db.DB)
	divisionRepo := mongodb.NewDivisionRepository(db.DB)
	positionRepo := mongodb.NewPositionRepository(db.DB)
	employeeRepo := mongodb.NewEmployeeRepository(db.DB)
	historyRepo := mongodb.NewHistoryRepository(db.DB)
	attendanceRepo := mongodb.NewAttendanceRepository(db.DB)
	scheduleRepo := mongodb.NewScheduleRepository(db.DB)
	holidayRepo := mongodb.NewHolidayRepository(db.DB)
	leaveRequestRepo := mongodb.NewLeaveRequestRepository(db.DB)
	leaveBalanceRepo := mongodb.NewLeaveBalanceRepository(db.DB)
	areaRepo := mongodb.NewServiceAreaRepository(db.DB)
	assignmentRepo := mongodb.NewAssignmentRepository(db.DB)
	pricingRepo := mongodb.NewPricingRepository(db.DB)
	templateRepo := mongodb.NewTemplateRepository(db.DB)
	userRepo := mongodb.NewUserRepository(db.DB)
	roleRepo := mongodb.NewRoleRepository(db.DB)

	// Authentication infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	var remoteVerifier *auth.RemoteVerifier
	if cfg.Auth.RemoteEndpoint != "" {
		remoteVerifier = auth.NewRemoteVerifier(cfg.Auth.RemoteEndpoint, cfg.Auth.RemoteTimeout)
	}

	// Object storage for employee documents
	var objectStorage workforceapp.ObjectStorageService
	switch cfg.Storage.Provider {
	case "s3":
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	default:
		log.Warn("Object storage stubbed, document uploads return placeholder URLs")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Document rendering
	var renderer docgen.Renderer
	switch cfg.DocGen.Renderer {
	case "chromedp":
		chromedpRenderer, err := docgen.NewChromedpRenderer(&docgen.ChromedpConfig{
			DefaultTimeout: cfg.DocGen.RenderTimeout,
			NoSandbox:      true,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize chromedp renderer", zap.Error(err))
		}
		renderer = chromedpRenderer
	default:
		log.Warn("Document renderer stubbed, render requests return HTML output")
		renderer = docgen.NewStubRenderer()
	}
	templateEngine := docgen.NewTemplateEngine()

	// Quote cache
	var quoteCache coverageapp.QuoteCache
	if redisClient != nil {
		quoteCache = cache.NewRedisQuoteCache(redisClient)
	} else {
		quoteCache = cache.NewInMemoryQuoteCache()
	}

	// Initialize application services
	branchService := orgapp.NewBranchService(branchRepo, employeeRepo, log)
	divisionService := orgapp.NewDivisionService(divisionRepo, branchRepo, positionRepo, employeeRepo, log)
	positionService := orgapp.NewPositionService(positionRepo, divisionRepo, employeeRepo, log)
	employeeService := workforceapp.NewEmployeeService(employeeRepo, historyRepo, branchRepo, divisionRepo, positionRepo, objectStorage, log)
	attendanceService := timekeepingapp.NewAttendanceService(attendanceRepo, scheduleRepo, holidayRepo, employeeRepo,
		timekeepingapp.AttendanceServiceConfig{
			GraceMinutes:           cfg.Attendance.GraceMinutes,
			DefaultGeofenceRadiusM: cfg.Attendance.DefaultGeofenceRadiusM,
			MarkAbsences:           cfg.Attendance.MarkAbsences,
		}, log)
	holidayService := timekeepingapp.NewHolidayService(holidayRepo, log)
	leaveService := timekeepingapp.NewLeaveService(leaveRequestRepo, leaveBalanceRepo, scheduleRepo, holidayRepo, employeeRepo, log)
	scheduleService := timekeepingapp.NewScheduleService(scheduleRepo, employeeRepo, log)
	areaService := coverageapp.NewAreaService(areaRepo, assignmentRepo, pricingRepo, log)
	assignmentService := coverageapp.NewAssignmentService(assignmentRepo, areaRepo, branchRepo, log)
	pricingService := coverageapp.NewPricingService(pricingRepo, areaRepo, quoteCache,
		coverageapp.PricingServiceConfig{QuoteCacheTTL: cfg.Pricing.QuoteCacheTTL}, log)
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, blacklist,
		identityapp.DefaultAuthServiceConfig(), log)
	roleService := identityapp.NewRoleService(roleRepo, userRepo, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, employeeRepo, log)

	// Document data providers
	dataRegistry := providers.NewRegistry()
	dataRegistry.Register(providers.NewEmploymentCertificateProvider(employeeRepo, branchRepo, divisionRepo, positionRepo))
	dataRegistry.Register(providers.NewAttendanceSheetProvider(attendanceRepo, employeeRepo, branchRepo, divisionRepo, positionRepo))
	dataRegistry.Register(providers.NewLeaveRequestFormProvider(leaveRequestRepo, employeeRepo, branchRepo, divisionRepo, positionRepo))
	documentService := documentapp.NewDocumentService(templateRepo, dataRegistry, templateEngine, renderer, log)

	// Business metrics with periodic headcount collection
	var businessMetrics *telemetry.BusinessMetrics
	if meterProvider.IsEnabled() {
		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:             meterProvider.Meter("hrm/business"),
			Logger:            log,
			WorkforceProvider: telemetry.NewRepositoryWorkforceMetricsProvider(employeeRepo),
		})
		if err != nil {
			log.Error("Failed to initialize business metrics", zap.Error(err))
		} else {
			businessMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Attendance day-close scheduler
	if cfg.Scheduler.Enabled {
		schedulerConfig := scheduler.SchedulerConfig{
			Enabled:           cfg.Scheduler.Enabled,
			CloseDayCron:      cfg.Scheduler.CloseDayCron,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}
		closeDayScheduler := scheduler.NewScheduler(schedulerConfig, scheduler.NewCloseDayExecutor(attendanceService, log), log)
		if err := closeDayScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := closeDayScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		triggerConfig, err := scheduler.CronTriggerConfigFromSpec(cfg.Scheduler.CloseDayCron)
		if err != nil {
			log.Fatal("Invalid day-close cron spec", zap.String("spec", cfg.Scheduler.CloseDayCron), zap.Error(err))
		}
		cronTrigger := scheduler.NewCronTrigger(triggerConfig, closeDayScheduler, log)
		if err := cronTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start cron trigger", zap.Error(err))
		}
		defer func() {
			if err := cronTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping cron trigger", zap.Error(err))
			}
		}()
		log.Info("Day-close scheduler started",
			zap.String("cron", cfg.Scheduler.CloseDayCron),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	// Initialize HTTP handlers
	branchHandler := handler.NewBranchHandler(branchService)
	divisionHandler := handler.NewDivisionHandler(divisionService)
	positionHandler := handler.NewPositionHandler(positionService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	holidayHandler := handler.NewHolidayHandler(holidayService)
	leaveHandler := handler.NewLeaveHandler(leaveService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	areaHandler := handler.NewAreaHandler(areaService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	pricingHandler := handler.NewPricingHandler(pricingService)
	documentHandler := handler.NewDocumentHandler(documentService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.ComponentChecker{
		"mongodb": db.Ping,
		"redis": func(ctx context.Context) error {
			if redisClient == nil {
				return redis.ErrClosed
			}
			return redisClient.Ping(ctx).Err()
		},
	})

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Metrics - HTTP request metrics (when telemetry is enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if meterProvider.IsEnabled() {
		engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("hrm/http"), true))
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		var swaggerHandlers []gin.HandlerFunc
		if cfg.Swagger.RequireAuth || len(cfg.Swagger.AllowedIPs) > 0 {
			swaggerHandlers = append(swaggerHandlers, middleware.SwaggerProtection(middleware.SwaggerConfig{
				Enabled:     cfg.Swagger.Enabled,
				RequireAuth: cfg.Swagger.RequireAuth,
				AllowedIPs:  cfg.Swagger.AllowedIPs,
			}, middleware.Authentication(middleware.AuthMiddlewareConfig{
				JWTService:     jwtService,
				TokenBlacklist: blacklist,
				Environment:    cfg.App.Env,
				Logger:         log,
			})))
		}
		swaggerHandlers = append(swaggerHandlers, ginSwagger.WrapHandler(swaggerFiles.Handler))
		engine.GET("/swagger/*any", swaggerHandlers...)
	}

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply authentication middleware to API routes. Login and refresh
	// stay public; everything else requires a verified token.
	r.Use(middleware.Authentication(middleware.AuthMiddlewareConfig{
		JWTService:      jwtService,
		TokenBlacklist:  blacklist,
		RemoteVerifier:  remoteVerifier,
		DevBypass:       cfg.Auth.DevBypassEnabled,
		DevBypassUserID: cfg.Auth.DevBypassUserID,
		Environment:     cfg.App.Env,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	// Identity domain (authentication, current user)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// User management
	userRoutes := router.NewDomainGroup("user", "/users")
	userRoutes.Use(middleware.RequireResource("hr.user"))
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PUT("/:id", userHandler.Update)
	userRoutes.PUT("/:id/roles", userHandler.SetRoles)
	userRoutes.POST("/:id/activate", userHandler.Activate)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.POST("/:id/lock", userHandler.Lock)
	userRoutes.POST("/:id/unlock", userHandler.Unlock)
	userRoutes.POST("/:id/reset-password", userHandler.ResetPassword)
	userRoutes.DELETE("/:id", userHandler.Delete)

	// Role management
	roleRoutes := router.NewDomainGroup("role", "/roles")
	roleRoutes.Use(middleware.RequireResource("hr.role"))
	roleRoutes.POST("", roleHandler.Create)
	roleRoutes.GET("", roleHandler.List)
	roleRoutes.GET("/:id", roleHandler.GetByID)
	roleRoutes.PUT("/:id", roleHandler.Update)
	roleRoutes.PUT("/:id/permissions", roleHandler.SetPermissions)
	roleRoutes.POST("/:id/enable", roleHandler.Enable)
	roleRoutes.POST("/:id/disable", roleHandler.Disable)
	roleRoutes.DELETE("/:id", roleHandler.Delete)

	// Organization domain: branch network
	branchRoutes := router.NewDomainGroup("branch", "/branches")
	branchRoutes.Use(middleware.RequireResource("hr.branch"))
	branchRoutes.POST("", branchHandler.Create)
	branchRoutes.GET("", branchHandler.List)
	branchRoutes.GET("/nearest", branchHandler.FindNearest)
	branchRoutes.GET("/code/:code", branchHandler.GetByCode)
	branchRoutes.GET("/:id", branchHandler.GetByID)
	branchRoutes.PUT("/:id", branchHandler.Update)
	branchRoutes.PUT("/:id/status", branchHandler.ChangeStatus)
	branchRoutes.PUT("/:id/metrics", branchHandler.UpdateMetrics)
	branchRoutes.PUT("/:id/resources", branchHandler.UpdateResources)
	branchRoutes.GET("/:id/children", branchHandler.GetChildren)
	branchRoutes.GET("/:id/descendants", branchHandler.GetDescendants)
	branchRoutes.POST("/:id/transfer", branchHandler.Transfer)
	branchRoutes.DELETE("/:id", branchHandler.Delete)

	// Organization domain: divisions
	divisionRoutes := router.NewDomainGroup("division", "/divisions")
	divisionRoutes.Use(middleware.RequireResource("hr.division"))
	divisionRoutes.POST("", divisionHandler.Create)
	divisionRoutes.GET("", divisionHandler.List)
	divisionRoutes.GET("/code/:code", divisionHandler.GetByCode)
	divisionRoutes.GET("/:id", divisionHandler.GetByID)
	divisionRoutes.PUT("/:id", divisionHandler.Update)
	divisionRoutes.POST("/:id/activate", divisionHandler.Activate)
	divisionRoutes.POST("/:id/deactivate", divisionHandler.Deactivate)
	divisionRoutes.GET("/:id/children", divisionHandler.GetChildren)
	divisionRoutes.GET("/:id/descendants", divisionHandler.GetDescendants)
	divisionRoutes.POST("/:id/transfer", divisionHandler.Transfer)
	divisionRoutes.DELETE("/:id", divisionHandler.Delete)

	// Organization domain: positions
	positionRoutes := router.NewDomainGroup("position", "/positions")
	positionRoutes.Use(middleware.RequireResource("hr.position"))
	positionRoutes.POST("", positionHandler.Create)
	positionRoutes.GET("", positionHandler.List)
	positionRoutes.GET("/code/:code", positionHandler.GetByCode)
	positionRoutes.GET("/:id", positionHandler.GetByID)
	positionRoutes.PUT("/:id", positionHandler.Update)
	positionRoutes.PUT("/:id/status", positionHandler.ChangeStatus)
	positionRoutes.GET("/:id/reports", positionHandler.GetDirectReports)
	positionRoutes.GET("/:id/descendants", positionHandler.GetDescendants)
	positionRoutes.GET("/:id/reporting-chain", positionHandler.GetReportingChain)
	positionRoutes.POST("/:id/transfer", positionHandler.Transfer)
	positionRoutes.DELETE("/:id", positionHandler.Delete)

	// Workforce domain: employees and their history
	employeeRoutes := router.NewDomainGroup("employee", "/employees")
	employeeRoutes.Use(middleware.RequireResource("hr.employee"))
	employeeRoutes.POST("", employeeHandler.Create)
	employeeRoutes.GET("", employeeHandler.List)
	employeeRoutes.GET("/stats", employeeHandler.Stats)
	employeeRoutes.GET("/no/:employeeNo", employeeHandler.GetByEmployeeNo)
	employeeRoutes.GET("/:id", employeeHandler.GetByID)
	employeeRoutes.PUT("/:id", employeeHandler.Update)
	employeeRoutes.PUT("/:id/salary", employeeHandler.UpdateSalary)
	employeeRoutes.PUT("/:id/status", employeeHandler.ChangeStatus)
	employeeRoutes.POST("/:id/documents", employeeHandler.AddDocument)
	employeeRoutes.DELETE("/:id/documents/:documentId", employeeHandler.RemoveDocument)
	employeeRoutes.GET("/:id/documents/:documentId/url", employeeHandler.DocumentDownloadURL)
	employeeRoutes.POST("/:id/skills", employeeHandler.AddSkill)
	employeeRoutes.POST("/:id/trainings", employeeHandler.AddTraining)
	employeeRoutes.POST("/:id/contracts", employeeHandler.AddContract)
	employeeRoutes.POST("/:id/transfer", employeeHandler.Transfer)
	employeeRoutes.GET("/:id/history", employeeHandler.GetHistory)
	employeeRoutes.DELETE("/:id", employeeHandler.Delete)

	// Timekeeping domain: attendance
	attendanceRoutes := router.NewDomainGroup("attendance", "/attendance")
	attendanceRoutes.Use(middleware.RequireResource("hr.attendance"))
	attendanceRoutes.POST("/check-in", attendanceHandler.CheckIn)
	attendanceRoutes.POST("/check-out", attendanceHandler.CheckOut)
	attendanceRoutes.POST("/close-day", attendanceHandler.CloseDay)
	attendanceRoutes.GET("", attendanceHandler.List)
	attendanceRoutes.GET("/:id", attendanceHandler.Get)
	attendanceRoutes.PUT("/:id/correct", attendanceHandler.Correct)

	// Timekeeping domain: leave requests and balances
	leaveRoutes := router.NewDomainGroup("leave", "/leave")
	leaveRoutes.Use(middleware.RequireResource("hr.leave"))
	leaveRoutes.POST("/requests", leaveHandler.CreateRequest)
	leaveRoutes.GET("/requests", leaveHandler.ListRequests)
	leaveRoutes.GET("/requests/:id", leaveHandler.GetRequest)
	leaveRoutes.POST("/requests/:id/approve", leaveHandler.Approve)
	leaveRoutes.POST("/requests/:id/reject", leaveHandler.Reject)
	leaveRoutes.POST("/requests/:id/cancel", leaveHandler.Cancel)
	leaveRoutes.POST("/balances", leaveHandler.AllocateBalance)
	leaveRoutes.POST("/balances/:id/adjust", leaveHandler.AdjustBalance)
	leaveRoutes.GET("/balances/employee/:employeeId", leaveHandler.GetBalances)

	// Timekeeping domain: work schedules
	scheduleRoutes := router.NewDomainGroup("schedule", "/schedules")
	scheduleRoutes.Use(middleware.RequireResource("hr.schedule"))
	scheduleRoutes.POST("", scheduleHandler.Create)
	scheduleRoutes.GET("", scheduleHandler.List)
	scheduleRoutes.GET("/effective/:employeeId", scheduleHandler.GetEffective)
	scheduleRoutes.GET("/:id", scheduleHandler.Get)
	scheduleRoutes.PUT("/:id", scheduleHandler.Update)
	scheduleRoutes.POST("/:id/activate", scheduleHandler.Activate)
	scheduleRoutes.POST("/:id/deactivate", scheduleHandler.Deactivate)
	scheduleRoutes.DELETE("/:id", scheduleHandler.Delete)

	// Timekeeping domain: holiday calendar
	holidayRoutes := router.NewDomainGroup("holiday", "/holidays")
	holidayRoutes.Use(middleware.RequireResource("hr.holiday"))
	holidayRoutes.POST("", holidayHandler.Create)
	holidayRoutes.GET("", holidayHandler.List)
	holidayRoutes.GET("/calendar", holidayHandler.Calendar)
	holidayRoutes.GET("/:id", holidayHandler.Get)
	holidayRoutes.PUT("/:id", holidayHandler.Update)
	holidayRoutes.DELETE("/:id", holidayHandler.Delete)

	// Coverage domain: service areas
	areaRoutes := router.NewDomainGroup("area", "/service-areas")
	areaRoutes.Use(middleware.RequireResource("hr.area"))
	areaRoutes.POST("", areaHandler.Create)
	areaRoutes.GET("", areaHandler.List)
	areaRoutes.GET("/locate", areaHandler.Locate)
	areaRoutes.GET("/near", areaHandler.Near)
	areaRoutes.GET("/:id", areaHandler.Get)
	areaRoutes.PUT("/:id", areaHandler.Update)
	areaRoutes.PUT("/:id/polygon", areaHandler.UpdatePolygon)
	areaRoutes.POST("/:id/activate", areaHandler.Activate)
	areaRoutes.POST("/:id/deactivate", areaHandler.Deactivate)
	areaRoutes.DELETE("/:id", areaHandler.Delete)

	// Coverage domain: branch assignments
	assignmentRoutes := router.NewDomainGroup("assignment", "/assignments")
	assignmentRoutes.Use(middleware.RequireResource("hr.assignment"))
	assignmentRoutes.POST("", assignmentHandler.Create)
	assignmentRoutes.GET("/area/:areaId", assignmentHandler.BranchesForArea)
	assignmentRoutes.GET("/branch-for-point", assignmentHandler.BranchForPoint)
	assignmentRoutes.PUT("/:id/priority", assignmentHandler.SetPriority)
	assignmentRoutes.POST("/:id/activate", assignmentHandler.Activate)
	assignmentRoutes.POST("/:id/deactivate", assignmentHandler.Deactivate)
	assignmentRoutes.DELETE("/:id", assignmentHandler.Delete)

	// Coverage domain: tariffs and quoting
	pricingRoutes := router.NewDomainGroup("pricing", "/pricing")
	pricingRoutes.Use(middleware.RequireResource("hr.pricing"))
	pricingRoutes.POST("", pricingHandler.Create)
	pricingRoutes.POST("/quote", pricingHandler.Quote)
	pricingRoutes.GET("/area/:areaId", pricingHandler.ListByArea)
	pricingRoutes.GET("/:id", pricingHandler.Get)
	pricingRoutes.PUT("/:id/rates", pricingHandler.UpdateRates)
	pricingRoutes.POST("/:id/activate", pricingHandler.Activate)
	pricingRoutes.POST("/:id/deactivate", pricingHandler.Deactivate)
	pricingRoutes.DELETE("/:id", pricingHandler.Delete)

	// Document domain: rendering and templates
	documentRoutes := router.NewDomainGroup("document", "/documents")
	documentRoutes.Use(middleware.RequireResource("hr.document"))
	documentRoutes.POST("/render", documentHandler.Render)
	documentRoutes.POST("/templates", documentHandler.CreateTemplate)
	documentRoutes.GET("/templates", documentHandler.ListTemplates)
	documentRoutes.GET("/templates/:id", documentHandler.GetTemplate)
	documentRoutes.PUT("/templates/:id", documentHandler.UpdateTemplate)
	documentRoutes.PUT("/templates/:id/content", documentHandler.UpdateTemplateContent)
	documentRoutes.POST("/templates/:id/default", documentHandler.SetDefaultTemplate)
	documentRoutes.POST("/templates/:id/activate", documentHandler.ActivateTemplate)
	documentRoutes.POST("/templates/:id/deactivate", documentHandler.DeactivateTemplate)
	documentRoutes.DELETE("/templates/:id", documentHandler.DeleteTemplate)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(userRoutes).
		Register(roleRoutes).
		Register(branchRoutes).
		Register(divisionRoutes).
		Register(positionRoutes).
		Register(employeeRoutes).
		Register(attendanceRoutes).
		Register(leaveRoutes).
		Register(scheduleRoutes).
		Register(holidayRoutes).
		Register(areaRoutes).
		Register(assignmentRoutes).
		Register(pricingRoutes).
		Register(documentRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
