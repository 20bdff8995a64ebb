package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/certchain/certificate-system/internal/api/handler"
	"github.com/certchain/certificate-system/internal/api/middleware"
	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

// Deps are the services and settings the router wires into handlers.
type Deps struct {
	Auth         ports.AuthService
	Users        ports.UserService
	Certificates ports.CertificateService
	JWTSecret    string
	Logger       zerolog.Logger
	// Readiness lists the dependencies probed by GET /health/ready.
	Readiness []handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("certificate_api"))

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	certHandler := handler.NewCertificateHandler(deps.Certificates)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness...)

	// --- Public ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/auth/sign-in", authHandler.SignIn)
	e.GET("/certificate/verify/:id", certHandler.Verify)

	// --- Authenticated ---
	auth := middleware.Auth(deps.JWTSecret)
	masterOnly := middleware.RBAC(domain.RoleMaster)

	users := e.Group("/users", auth)
	users.POST("", userHandler.Create, masterOnly)
	users.GET("/all", userHandler.List, masterOnly)
	users.GET("/code/:code", userHandler.ByCode)
	users.GET("/userId/:id", userHandler.ByID)
	users.PUT("/:id", userHandler.Update)

	certs := e.Group("/certificate", auth)
	certs.GET("/type/all", certHandler.ListTypes)
	certs.POST("/type/create", certHandler.CreateType, masterOnly)
	certs.POST("/issue", certHandler.Issue, masterOnly)
	certs.GET("/student/:id", certHandler.ByStudent)
	certs.GET("/teacher/:id", certHandler.ByTeacher)
	certs.GET("/studentByType/:typeId", certHandler.StudentsByType)
	certs.GET("/:id", certHandler.ByID)
	// The path segment of the sign route is the signing teacher's id.
	certs.POST("/:id", certHandler.Sign, middleware.RBAC(domain.RoleTeacher))
	certs.PUT("/:id/approve", certHandler.Approve, middleware.RBAC(domain.RoleCompany, domain.RoleMaster))

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
