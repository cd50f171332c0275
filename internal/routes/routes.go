package routes

import (
	"net/http"

	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/middleware"
	"gearguard/pkg/qrcode"
	"gearguard/pkg/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	User      *zap.Logger
	Equipment *zap.Logger
	Request   *zap.Logger
	Report    *zap.Logger
}

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth      services.AuthServiceInterface
	User      services.UserServiceInterface
	Team      services.TeamServiceInterface
	Equipment services.EquipmentServiceInterface
	Request   services.RequestServiceInterface
	Report    services.ReportServiceInterface
}

// InitRouter wires repositories and services over the pool and registers every route.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("initializing routes")

	txManager := repositories.NewTxManager(dbConn)

	userRepo := repositories.NewUserRepository(dbConn, loggers.User)
	teamRepo := repositories.NewTeamRepository(dbConn, loggers.Main)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Equipment)
	requestRepo := repositories.NewRequestRepository(dbConn, loggers.Request)
	reportRepo := repositories.NewReportRepository(dbConn)

	svcs := Services{
		Auth:      services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg.Auth, loggers.Auth),
		User:      services.NewUserService(userRepo, loggers.User),
		Team:      services.NewTeamService(teamRepo, loggers.Main),
		Equipment: services.NewEquipmentService(equipmentRepo, cfg.App.LockScrappedEquipment, loggers.Equipment),
		Request:   services.NewRequestService(requestRepo, equipmentRepo, txManager, loggers.Request),
		Report:    services.NewReportService(reportRepo, requestRepo, loggers.Report),
	}

	RegisterRoutes(e, svcs, dbConn, loggers, cfg)
	loggers.Main.Info("routes initialized")
}

// RegisterRoutes mounts the API under cfg.Server.APIPrefix.
func RegisterRoutes(e *echo.Echo, svcs Services, db controllers.Pinger, loggers *Loggers, cfg *config.Config) {
	timeout := cfg.App.RequestTimeout

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	api := e.Group(cfg.Server.APIPrefix)
	authMW := middleware.NewAuthMiddleware(svcs.Auth, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)
	limiter := rateLimiter(cfg.App.RateLimit)

	health := controllers.NewHealthController(db, loggers.Main, timeout)
	api.GET("/health", health.Health)

	runAuthRouter(api, secureGroup, controllers.NewAuthController(svcs.Auth, loggers.Auth, timeout), limiter)
	runUserRouter(secureGroup, controllers.NewUserController(svcs.User, loggers.User, timeout), loggers.User)
	runTeamRouter(secureGroup, controllers.NewTeamController(svcs.Team, loggers.Main, timeout), loggers.Main)
	runEquipmentRouter(secureGroup, controllers.NewEquipmentController(svcs.Equipment, loggers.Equipment, timeout), loggers.Equipment)
	runRequestRouter(secureGroup, controllers.NewRequestController(svcs.Request, loggers.Request, timeout), loggers.Request)
	runReportRouter(secureGroup, controllers.NewReportController(svcs.Report, loggers.Report, timeout), loggers.Report)

	qr := qrcode.NewGenerator(cfg.App.FrontendBaseURL)
	runPublicRouter(api, controllers.NewPublicController(svcs.Equipment, qr, loggers.Main, timeout), limiter)
}

// rateLimiter limits requests per client IP. A non-positive limit disables it.
func rateLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := echomw.NewRateLimiterMemoryStore(rate.Limit(perSecond))
	return echomw.RateLimiter(store)
}
