//	@title			ClientDesk Portal API
//	@version		1.0
//	@description	Backend for the ClientDesk client portal — multi-tenant photo uploads, documents, and dashboard.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/clientdesk/portal/internal/auth"
	"github.com/clientdesk/portal/internal/config"
	"github.com/clientdesk/portal/internal/dashboard"
	"github.com/clientdesk/portal/internal/db"
	"github.com/clientdesk/portal/internal/document"
	appMiddleware "github.com/clientdesk/portal/internal/middleware"
	"github.com/clientdesk/portal/internal/photo"
	"github.com/clientdesk/portal/internal/storage"
	"github.com/clientdesk/portal/internal/user"

	_ "github.com/clientdesk/portal/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: repository → service → handler
	userRepo := user.NewRepository(pool)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(pool)
	authSvc := auth.NewService(authRepo, userSvc, cfg)
	authHandler := auth.NewHandler(authSvc)

	photoRepo := photo.NewPostgresRepository(pool)
	photoSvc := photo.NewService(photoRepo, store)
	photoHandler := photo.NewHandler(photoSvc)

	docRepo := document.NewRepository(pool)
	docHandler := document.NewHandler(docRepo, store)

	dashRepo := dashboard.NewPostgresRepository(pool)
	dashSvc := dashboard.NewService(dashRepo)
	dashHandler := dashboard.NewHandler(dashSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/login", authHandler.Login)

		// Everything below requires a session
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireAuth(cfg.JWTSecret))

			r.Get("/users/me", userHandler.GetMe)

			r.Route("/photos", func(r chi.Router) {
				r.Get("/upload-slot", photoHandler.RequestUploadSlot)
				r.Post("/", photoHandler.ConfirmUpload)
				r.Get("/", photoHandler.List)
				r.Delete("/", photoHandler.Delete)
				r.Delete("/{id}", photoHandler.Delete)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", docHandler.List)
				r.Get("/{id}", docHandler.Get)
				r.Get("/{id}/download", docHandler.Download)
			})

			r.Get("/dashboard/stats", dashHandler.GetStats)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
