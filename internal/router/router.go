package router

import (
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/config"
	"github.com/abdobody2040/PharmStockHub/internal/handler"
	"github.com/abdobody2040/PharmStockHub/internal/middleware"
	"github.com/abdobody2040/PharmStockHub/internal/repository"
	"github.com/abdobody2040/PharmStockHub/internal/service"
	"github.com/abdobody2040/PharmStockHub/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewStockItemRepository(db)
	allocationRepo := repository.NewAllocationRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	specialtyRepo := repository.NewSpecialtyRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	stockSvc := service.NewStockService(itemRepo, allocationRepo, categoryRepo, specialtyRepo)
	movementSvc := service.NewMovementService(itemRepo, allocationRepo, movementRepo, userRepo, dispatcher)
	categorySvc := service.NewCategoryService(categoryRepo)
	specialtySvc := service.NewSpecialtyService(specialtyRepo)
	reportSvc := service.NewReportService(itemRepo, cfg.ReportStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	itemsH := handler.NewStockItemsHandler(stockSvc)
	movementsH := handler.NewMovementsHandler(movementSvc)
	allocationsH := handler.NewAllocationsHandler(movementSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	specialtiesH := handler.NewSpecialtiesHandler(specialtySvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — permissions declared per-endpoint
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		api.GET("/auth/me", authH.Me)

		// Movements: the stock ledger
		api.POST("/movements", middleware.RequirePermission(service.PermMoveStock), movementsH.Move)
		api.GET("/movements", middleware.RequirePermission(service.PermViewMovements), movementsH.List)

		// Allocations: current per-user holdings
		api.GET("/allocations", middleware.RequirePermission(service.PermViewMovements), allocationsH.List)

		// Stock items — all authenticated users can read; writes need canManageStock
		api.GET("/stock-items", itemsH.List)
		api.GET("/stock-items/expiring", itemsH.Expiring)
		api.GET("/stock-items/:id", itemsH.Get)
		items := api.Group("/stock-items", middleware.RequirePermission(service.PermManageStock))
		{
			items.POST("", itemsH.Create)
			items.PUT("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Delete)
			items.POST("/:id/adjust", itemsH.AdjustQuantity)
		}

		// Users — canManageUsers only
		users := api.Group("/users", middleware.RequirePermission(service.PermManageUsers))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/:id", usersH.Get)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}

		// Lookups — all authenticated users can read; writes need canManageLookups
		api.GET("/categories", categoriesH.List)
		api.GET("/specialties", specialtiesH.List)
		categories := api.Group("/categories", middleware.RequirePermission(service.PermManageLookups))
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Deactivate)
		}
		specialties := api.Group("/specialties", middleware.RequirePermission(service.PermManageLookups))
		{
			specialties.POST("", specialtiesH.Create)
			specialties.PUT("/:id", specialtiesH.Update)
			specialties.DELETE("/:id", specialtiesH.Deactivate)
		}

		// Reports — canViewReports
		reports := api.Group("/reports", middleware.RequirePermission(service.PermViewReports))
		{
			reports.GET("/valuation", reportsH.Valuation)
			reports.GET("/expiring.pdf", reportsH.ExpiringPDF)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
