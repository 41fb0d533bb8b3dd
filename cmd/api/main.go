package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/config"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/admin"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/auth"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/catalog"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/inventory"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/profile"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/store"
	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/user"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("opening database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("pinging database", zap.Error(err))
	}
	logger.Info("connected to database")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Repositories ────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	profileRepo := profile.NewPostgresRepository(db)
	storeRepo := store.NewPostgresRepository(db)
	catalogRepo := catalog.NewPostgresRepository(db)
	inventoryRepo := inventory.NewPostgresRepository(db)

	// ── Services ────────────────────────────────────────────
	identityService := user.NewService(userRepo)
	authService := auth.NewService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	storeService := store.NewService(storeRepo)
	catalogService := catalog.NewService(catalogRepo)
	importService := catalog.NewImportService(catalogRepo, logger)
	inventoryService := inventory.NewService(inventoryRepo, storeRepo)
	adminService := admin.NewService(identityService, profileRepo, storeRepo, logger)

	// ── Handlers ────────────────────────────────────────────
	authHandler := auth.NewHandler(authService, logger)
	authHandler.RegisterRoutes(router)

	authMiddleware := auth.NewMiddleware(authService, userRepo, profileRepo)

	catalogHandler := catalog.NewHandler(catalogService, importService, logger)

	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		authHandler.RegisterProtectedRoutes(r)
		store.NewHandler(storeService, logger).RegisterRoutes(r)
		inventory.NewHandler(inventoryService, logger).RegisterRoutes(r)
		catalogHandler.RegisterRoutes(r)
	})

	// Admin panel: hq manages everything, area and store managers a
	// subset, everyone else is rejected at the door. Catalog import
	// writes the whole product list, so it lives here too.
	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(auth.RequireRole(profile.RoleHQ, profile.RoleAreaManager, profile.RoleStoreManager))

		admin.NewHandler(adminService, logger).RegisterRoutes(r)
		catalogHandler.RegisterImportRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	logger.Info("petmark inventory API listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
