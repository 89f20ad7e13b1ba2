package api

import (
	"net"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/leverblum/boardsctrl/internal/api/handler"
	"github.com/leverblum/boardsctrl/internal/api/middleware"
	"github.com/leverblum/boardsctrl/internal/core/domain"
	"github.com/leverblum/boardsctrl/internal/core/ports"
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Log zerolog.Logger

	AuthService     ports.AuthService
	TokenVerifier   ports.TokenVerifier
	CategoryService ports.CategoryService
	BoardService    ports.BoardService
	SlideService    ports.SlideService
	RoleService     ports.RoleService
	UserService     ports.UserService

	// LoginLimiter throttles /auth/* per LoginWindow. Nil disables rate limiting.
	LoginLimiter ports.RateLimiter
	LoginWindow  time.Duration
	// Readiness lists the dependencies checked by /health/ready.
	Readiness map[string]handler.Pinger
	// TrustedProxies are the peers whose X-Forwarded-For is honoured when
	// resolving the client IP. Empty means the peer address is the client.
	TrustedProxies []*net.IPNet
	// AllowedOrigins feeds the CORS middleware. Empty disables CORS headers.
	AllowedOrigins []string
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if len(d.AllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: d.AllowedOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "boards_http",
		Registerer: d.Registerer,
	}))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	auth := e.Group("/auth")
	if d.LoginLimiter != nil {
		auth.Use(middleware.RateLimit(d.LoginLimiter, d.LoginWindow, d.Log))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Protected API ---
	apiGroup := e.Group("/api", middleware.Auth(d.TokenVerifier))
	read := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	write := middleware.RBAC(domain.RoleAdmin)

	apiGroup.GET("/me", authHandler.Me, read)

	categories := handler.NewCategoryHandler(d.CategoryService)
	g := apiGroup.Group("/categories")
	g.GET("", categories.List, read)
	g.GET("/:id", categories.Get, read)
	g.POST("", categories.Create, write)
	g.PATCH("/:id", categories.Update, write)
	g.DELETE("/:id", categories.Toggle, write)

	boards := handler.NewBoardHandler(d.BoardService)
	g = apiGroup.Group("/boards")
	g.GET("", boards.List, read)
	g.GET("/by-category/:categoryId", boards.ListByCategory, read)
	g.GET("/:id", boards.Get, read)
	g.POST("", boards.Create, write)
	g.PATCH("/:id", boards.Update, write)
	g.DELETE("/:id", boards.Toggle, write)

	slides := handler.NewSlideHandler(d.SlideService)
	g = apiGroup.Group("/slides")
	g.GET("", slides.List, read)
	g.GET("/by-board/:boardId", slides.ListByBoard, read)
	g.GET("/:id", slides.Get, read)
	g.POST("", slides.Create, write)
	g.PATCH("/:id", slides.Update, write)
	g.DELETE("/:id", slides.Toggle, write)

	roles := handler.NewRoleHandler(d.RoleService)
	g = apiGroup.Group("/roles")
	g.GET("", roles.List, read)
	g.GET("/:id", roles.Get, read)
	g.POST("", roles.Create, write)
	g.PATCH("/:id", roles.Update, write)
	g.DELETE("/:id", roles.Toggle, write)

	users := handler.NewUserHandler(d.UserService)
	g = apiGroup.Group("/users")
	g.GET("", users.List, read)
	g.GET("/:id", users.Get, read)
	g.POST("", users.Create, write)
	g.PATCH("/:id", users.Update, write)
	g.DELETE("/:id", users.Toggle, write)

	return e
}

// ipExtractor keys clients by peer address unless the peer is a trusted proxy.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
