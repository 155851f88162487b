package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/staffdir/directory-api/docs"
	"github.com/staffdir/directory-api/internal/api/handler"
	"github.com/staffdir/directory-api/internal/api/middleware"
	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
	"github.com/staffdir/directory-api/internal/core/service"
	"github.com/staffdir/directory-api/internal/infrastructure/config"
	mongodb "github.com/staffdir/directory-api/internal/infrastructure/db/mongo"
	redisdb "github.com/staffdir/directory-api/internal/infrastructure/db/redis"
	"github.com/staffdir/directory-api/internal/infrastructure/http/handlers"
)

// NewRouter builds the Echo instance with all routes registered. rdb may be
// nil; the login throttle is then disabled and readiness skips Redis.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	deptRepo := mongodb.NewDepartmentRepository(db)

	var throttle ports.LoginThrottle
	if rdb != nil {
		throttle = redisdb.NewLoginThrottle(rdb)
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, throttle, log)
	deptService := service.NewDepartmentService(deptRepo, userRepo, log)
	employeeService := service.NewEmployeeService(userRepo, deptRepo)
	queryService := service.NewQueryService(deptRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	deptHandler := handler.NewDepartmentHandler(deptService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	queryHandler := handler.NewQueryHandler(queryService)

	authRequired := middleware.Auth(tokenService)
	managerOnly := middleware.RBAC(domain.RoleManager)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authRequired)

	// --- Department routes (manager-only) ---
	department := v1.Group("/department", authRequired, managerOnly)
	department.GET("/departments", deptHandler.List)
	department.POST("/departments", deptHandler.Create)
	department.PUT("/departments/:id", deptHandler.Update)
	department.DELETE("/departments/:id", deptHandler.Delete)
	department.POST("/departments/:id/assign", deptHandler.Assign)

	// --- Employee self-service routes ---
	employee := v1.Group("/employee", authRequired)
	employee.GET("/profile", employeeHandler.Profile)
	employee.GET("/department", employeeHandler.Department)

	// --- Directory query routes (manager-only) ---
	query := v1.Group("/query", authRequired, managerOnly)
	query.GET("/it-employees-location-a", queryHandler.ITEmployeesInLocationA)
	query.GET("/sales-employees-sorted", queryHandler.SalesEmployeesSorted)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
