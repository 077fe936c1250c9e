package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/notely/internal/api/handlers"
	mw "github.com/Harshitk-cp/notely/internal/api/middleware"
	"github.com/Harshitk-cp/notely/internal/buildconfig"
	"github.com/Harshitk-cp/notely/internal/config"
	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/security"
	"github.com/Harshitk-cp/notely/internal/service"
	"github.com/Harshitk-cp/notely/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pinger reports database reachability for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Tokens issues session tokens at login and verifies them in the route guards.
type Tokens interface {
	service.TokenIssuer
	mw.TokenVerifier
}

// Deps is everything the router needs. NewApp fills it from a pgx pool and
// config; tests fill it with in-memory stores.
type Deps struct {
	Tenants domain.TenantStore
	Users   domain.UserStore
	Notes   domain.NoteStore
	DB      Pinger

	Tokens         Tokens
	Hasher         *security.Hasher
	InvitePassword string
	RateLimitRPS   float64
	RateLimitBurst int
}

// App holds the router and the pieces main needs for lifecycle management.
type App struct {
	Router      *chi.Mux
	RateLimiter *mw.RateLimiter
	counters    mw.Counters
	startTime   time.Time
}

func NewApp(db *pgxpool.Pool, tokens *security.TokenService, logger *zap.Logger) *App {
	return New(Deps{
		Tenants:        store.NewTenantStore(db),
		Users:          store.NewUserStore(db),
		Notes:          store.NewNoteStore(db),
		DB:             db,
		Tokens:         tokens,
		Hasher:         security.NewHasher(config.BcryptCost()),
		InvitePassword: config.InviteDefaultPassword(),
		RateLimitRPS:   config.RateLimitRPS(),
		RateLimitBurst: config.RateLimitBurst(),
	}, logger)
}

func New(d Deps, logger *zap.Logger) *App {
	// Services
	authSvc := service.NewAuthService(d.Tenants, d.Users, d.Hasher, d.Tokens, logger)
	quota := service.NewQuotaPolicy(d.Tenants, d.Notes)
	noteSvc := service.NewNoteService(d.Notes, quota, logger)
	tenantSvc := service.NewTenantService(d.Tenants, d.Users, d.Hasher, d.InvitePassword, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authSvc, logger)
	noteHandler := handlers.NewNoteHandler(noteSvc, logger)
	tenantHandler := handlers.NewTenantHandler(tenantSvc, logger)

	r := chi.NewRouter()
	app := &App{
		Router:      r,
		RateLimiter: mw.NewRateLimiter(d.RateLimitRPS, d.RateLimitBurst),
		startTime:   time.Now(),
	}
	metricsCollector := mw.NewMetricsCollector(&app.counters)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiter.Middleware)

	r.Get("/health", healthHandler(d.DB, logger))
	r.Get("/metrics", app.metricsHandler())
	r.Get("/version", versionHandler)

	authed := mw.Authenticate(d.Tokens)
	members := mw.Authenticate(d.Tokens, domain.RoleAdmin, domain.RoleMember)
	admins := mw.Authenticate(d.Tokens, domain.RoleAdmin)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(authed).Get("/me", authHandler.Me)
	})

	// One guard per route; stacking them would verify the token twice.
	r.Route("/notes", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Get("/{id}", noteHandler.GetByID)
		})
		r.Group(func(r chi.Router) {
			r.Use(members)
			r.Put("/{id}", noteHandler.Update)
			r.Delete("/{id}", noteHandler.Delete)
		})
	})

	r.Route("/tenants/{slug}", func(r chi.Router) {
		r.With(members).Get("/", tenantHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(admins)
			r.Get("/users", tenantHandler.ListUsers)
			r.Post("/invite", tenantHandler.Invite)
			r.Put("/users/{userId}/role", tenantHandler.ChangeRole)
			r.Delete("/users/{userId}", tenantHandler.RemoveUser)
			r.Put("/upgrade", tenantHandler.Upgrade)
		})
	})

	return app
}

func healthHandler(db Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(r.Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(buildconfig.Current())
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds":  uptime.Seconds(),
			"uptime_human":    uptime.Round(time.Second).String(),
			"goroutines":      runtime.NumGoroutine(),
			"tracked_clients": app.RateLimiter.Len(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}
		for name, v := range app.counters.Snapshot() {
			response[name] = v
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and security types satisfy interfaces at compile time.
var (
	_ domain.TenantStore     = (*store.TenantStore)(nil)
	_ domain.UserStore       = (*store.UserStore)(nil)
	_ domain.NoteStore       = (*store.NoteStore)(nil)
	_ service.PasswordHasher = (*security.Hasher)(nil)
	_ Tokens                 = (*security.TokenService)(nil)
	_ Pinger                 = (*pgxpool.Pool)(nil)
)
