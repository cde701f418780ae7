package main

import (
	"github.com/alecruz/nacho-backend/internal/handler"
	"github.com/alecruz/nacho-backend/internal/middleware"
	"github.com/alecruz/nacho-backend/internal/model"
	"github.com/alecruz/nacho-backend/internal/repository"
	"github.com/alecruz/nacho-backend/pkg/config"
	"github.com/alecruz/nacho-backend/pkg/database"
	"github.com/alecruz/nacho-backend/pkg/jwtutil"
	"github.com/alecruz/nacho-backend/pkg/logger"
	"github.com/alecruz/nacho-backend/prometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{Level: cfg.Log.Level, Environment: cfg.Server.Env}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting nacho-backend...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := model.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Token service with the injected signing configuration
	jwt := jwtutil.New(&cfg.JWT)

	// Repositories
	usuarios := repository.NewUsuarioRepo(db)
	campos := repository.NewCampoRepo(db)
	cultivos := repository.NewCultivoRepo(db)
	insumos := repository.NewInsumoRepo(db)
	parametros := repository.NewParametroRepo(db)
	lotes := repository.NewLoteRepo(db)

	// Handlers
	authHandler := handler.NewAuthHandler(usuarios, jwt)
	campoHandler := handler.NewCampoHandler(campos)
	cultivoHandler := handler.NewCultivoHandler(cultivos)
	insumoHandler := handler.NewInsumoHandler(insumos)
	parametroHandler := handler.NewParametroHandler(parametros)
	loteHandler := handler.NewLoteHandler(lotes, campos)

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.Metrics)
	e.POST("/auth/login", authHandler.Login)

	requireAuth := middleware.RequireAuth(jwt)
	requireAdmin := middleware.RequireRole(model.RolAdmin)

	e.GET("/me", authHandler.Me, requireAuth)

	camposGroup := e.Group("/campos", requireAuth)
	camposGroup.GET("", campoHandler.List)
	camposGroup.GET("/:id", campoHandler.Get)
	camposGroup.POST("", campoHandler.Create, requireAdmin)
	camposGroup.PUT("/:id", campoHandler.Update, requireAdmin)
	camposGroup.DELETE("/:id", campoHandler.Remove, requireAdmin)

	cultivosGroup := e.Group("/cultivos", requireAuth)
	cultivosGroup.GET("", cultivoHandler.List)
	cultivosGroup.POST("", cultivoHandler.Create, requireAdmin)
	cultivosGroup.PUT("/:id", cultivoHandler.Update, requireAdmin)
	cultivosGroup.DELETE("/:id", cultivoHandler.Remove, requireAdmin)

	insumosGroup := e.Group("/insumos", requireAuth)
	insumosGroup.GET("", insumoHandler.List)
	insumosGroup.POST("", insumoHandler.Create, requireAdmin)
	insumosGroup.PUT("/:id", insumoHandler.Update, requireAdmin)
	insumosGroup.DELETE("/:id", insumoHandler.Remove, requireAdmin)

	parametrosGroup := e.Group("/parametros", requireAuth)
	parametrosGroup.GET("", parametroHandler.List)
	parametrosGroup.POST("", parametroHandler.Create, requireAdmin)
	parametrosGroup.PUT("/:id", parametroHandler.Update, requireAdmin)
	parametrosGroup.DELETE("/:id", parametroHandler.Remove, requireAdmin)

	// Lote mutations carry the same role gate as every other module, and all
	// lote access is tenant-checked through the owning campo
	lotesGroup := e.Group("/lotes", requireAuth)
	lotesGroup.GET("", loteHandler.List)
	lotesGroup.GET("/:id", loteHandler.Get)
	lotesGroup.POST("", loteHandler.Create, requireAdmin)
	lotesGroup.PUT("/:id", loteHandler.Update, requireAdmin)
	lotesGroup.DELETE("/:id", loteHandler.Remove, requireAdmin)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
