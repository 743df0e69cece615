package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/auth"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/config"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/http/handlers"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/http/middlewares"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/observability"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Users  repo.UsersRepo
	JWT    *auth.Manager
	News   handlers.NewsSource

	// Prom and Gatherer are optional; /metrics is mounted only when both are set.
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

// NewRouter fails only on an invalid TrustedProxies entry.
func NewRouter(d Deps) (*gin.Engine, error) {
	if !d.Config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := d.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()

	// with no trusted proxies ClientIP is the peer address, so a forged
	// X-Forwarded-For cannot dodge the per-IP limiter
	if err := r.SetTrustedProxies(d.Config.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	// middleware

	r.Use(gin.CustomRecovery(func(ctx *gin.Context, rec any) {
		log.ErrorContext(ctx.Request.Context(), "panic recovered", "panic", rec)
		handlers.RespondInternal(ctx)
	}))
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware(d.Config.ServiceName))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	if len(d.Config.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(d.Config.CORSAllowedOrigins))
	}
	r.Use(middlewares.MaxBodyBytes(d.Config.MaxBodyBytes))

	r.NoRoute(handlers.RespondNotFound)

	// health
	ping := func(ctx context.Context) error {
		cctx, cancel := context.WithTimeout(ctx, 1*time.Second)
		defer cancel()

		return d.Users.Ping(cctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Prom != nil && d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// public auth routes share one limiter per client IP
	limiter := middlewares.NewRateLimiter(d.Config.AuthRateLimit, d.Config.AuthRateWindow)
	limit := limiter.RateLimiterMiddleware(middlewares.KeyByIP)

	authHandler := handlers.NewAuthHandler(d.Users, d.JWT, log)
	r.POST("/users/signup", limit, authHandler.SignUp)
	r.POST("/users/login", limit, authHandler.Login)

	// protected routes
	authMiddleware := middlewares.NewAuthMiddleware(d.JWT, d.Users, log)
	protected := r.Group("/")
	protected.Use(authMiddleware.RequireAuth())

	prefsHandler := handlers.NewPreferencesHandler(d.Users, log)
	protected.GET("/users/preferences", prefsHandler.Get)
	protected.PUT("/users/preferences", prefsHandler.Put)

	newsHandler := handlers.NewNewsHandler(d.News)
	protected.GET("/news", newsHandler.List)

	return r, nil
}

// NewServer applies the timeouts used in every environment.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
