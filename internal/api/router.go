package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/banque/registration-system/docs"
	"github.com/banque/registration-system/internal/api/handler"
	"github.com/banque/registration-system/internal/api/middleware"
	"github.com/banque/registration-system/internal/core/domain"
	"github.com/banque/registration-system/internal/core/ports"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Bank      ports.BankService
	Companies ports.CompanyService
	Employees ports.EmployeeService
	Auth      ports.AuthService
	JWTSecret string
	// Checks are the readiness probes keyed by dependency name.
	Checks map[string]handler.Check
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// HTTP metrics get their own registry so routers built in tests do not
	// collide; /metrics gathers it together with the default registry.
	httpRegistry := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "banque",
		Registerer: httpRegistry,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	clientHandler := handler.NewClientHandler(deps.Bank)
	companyHandler := handler.NewCompanyHandler(deps.Companies)
	employeeHandler := handler.NewEmployeeHandler(deps.Employees)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/employee/login", employeeHandler.Login)

	v1 := e.Group("/v1")
	v1.POST("/clients", clientHandler.Register)

	// --- Client account ---
	accounts := v1.Group("/accounts/me", authMiddleware, middleware.RBAC(domain.RoleClient))
	accounts.GET("", clientHandler.Account)
	accounts.GET("/balance", clientHandler.Balance)
	accounts.GET("/history", clientHandler.History)
	accounts.POST("/pin", clientHandler.SetPIN)
	accounts.POST("/deposit", clientHandler.Deposit)
	accounts.POST("/withdraw", clientHandler.Withdraw)
	accounts.POST("/transfer", clientHandler.Transfer)

	// --- Companies ---
	v1.POST("/companies", companyHandler.Register, authMiddleware, middleware.RBAC(domain.RoleEmployee))
	company := v1.Group("/companies/me", authMiddleware, middleware.RBAC(domain.RoleCompany))
	company.GET("/balance", companyHandler.Balance)
	company.GET("/history", companyHandler.History)
	company.POST("/deposit", companyHandler.Deposit)
	company.POST("/withdraw", companyHandler.Withdraw)
	company.POST("/transfer", companyHandler.Transfer)

	// --- Employee ---
	employee := v1.Group("/employee", authMiddleware, middleware.RBAC(domain.RoleEmployee))
	employee.GET("/cards", employeeHandler.Cards)
	employee.POST("/clients/:login/approve", employeeHandler.ApproveClient)
	employee.POST("/clients/:login/reject", employeeHandler.RejectClient)
	employee.POST("/companies/:id/loans/approve", employeeHandler.ApproveLoan)
	employee.POST("/companies/:id/loans/reject", employeeHandler.RejectLoan)
	employee.POST("/accounts/:card/freeze", employeeHandler.Freeze)
	employee.POST("/accounts/:card/unfreeze", employeeHandler.Unfreeze)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpRegistry},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
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
