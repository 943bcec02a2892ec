package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/flowmasterhq/flowmaster/internal/auth"
	"github.com/flowmasterhq/flowmaster/internal/config"
	"github.com/flowmasterhq/flowmaster/internal/provision"
	"github.com/flowmasterhq/flowmaster/internal/server/middleware"
	"github.com/flowmasterhq/flowmaster/internal/storage"
	"github.com/flowmasterhq/flowmaster/internal/store/postgres"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	pools      *postgres.TenantPools
	cfg        *config.Config
}

// New creates a Server with all routes wired. objectStore may be nil when no
// bucket is configured; the upload endpoints then reject files.
func New(ctx context.Context, cfg *config.Config, store *postgres.Store, pools *postgres.TenantPools, verifier auth.Verifier, provisioner *provision.Service, objectStore storage.ObjectStore) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router: router,
		store:  store,
		pools:  pools,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 with two sub-groups:
	// 1. Authenticated routes that hit only the global database. Provisioning
	//    must work before the caller's token carries a usable tenant claim,
	//    and master data is shared, so neither group requires one.
	// 2. Authenticated, tenant-scoped routes. These require the tenant claim
	//    and are rate limited per tenant.
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier))

			globalConfig := huma.DefaultConfig("FlowMaster Global API", "1.0.0")
			globalConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			globalAPI := humachi.New(r, globalConfig)
			registerGlobalRoutes(globalAPI, store, provisioner)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier))
			r.Use(middleware.RequireTenant())
			r.Use(middleware.RateLimit(ctx, 100, 200))

			tenantConfig := huma.DefaultConfig("FlowMaster Tenant API", "1.0.0")
			tenantConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			tenantAPI := humachi.New(r, tenantConfig)
			registerTenantRoutes(tenantAPI, tenantResolver{pools: pools}, objectStore)
		})
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
