package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/vendahq/backoffice/internal/modules/auth"
	"github.com/vendahq/backoffice/internal/modules/billing"
	"github.com/vendahq/backoffice/internal/modules/catalog"
	"github.com/vendahq/backoffice/internal/modules/sales"
	"github.com/vendahq/backoffice/internal/modules/store"
	"github.com/vendahq/backoffice/internal/modules/tenant"
	"github.com/vendahq/backoffice/internal/modules/tender"
	"github.com/vendahq/backoffice/internal/modules/user"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Phase 1: Identity ───────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	authService := auth.NewService(userRepo, jwtKey)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Phase 2: Tenants & Stores ───────────────────────────
	tenantRepo := tenant.NewPostgresRepository(db)
	tenantService := tenant.NewService(tenantRepo)
	tenant.NewHandler(tenantService).RegisterRoutes(router)

	storeRepo := store.NewPostgresRepository(db)
	storeService := store.NewService(storeRepo, tenantRepo)
	store.NewHandler(storeService).RegisterRoutes(router)

	// ── Phase 3: Catalog & Tenders ──────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	tenderRepo := tender.NewPostgresRepository(db)
	tenderService := tender.NewService(tenderRepo)
	tender.NewHandler(tenderService).RegisterRoutes(router)

	// ── Phase 4: Sales ──────────────────────────────────────
	salesRepo := sales.NewPostgresRepository(db)
	salesService := sales.NewService(salesRepo)
	sales.NewHandler(salesService).RegisterRoutes(router)

	// ── Phase 5: Billing & Plan Changes ─────────────────────
	checkout := billing.NewHostedCheckoutGateway(
		os.Getenv("CHECKOUT_API_KEY"),
		os.Getenv("CHECKOUT_BASE_URL"),
		os.Getenv("CHECKOUT_ENV"),
	)
	billingRepo := billing.NewPostgresRepository(db)
	billingService := billing.NewService(billingRepo, storeRepo, checkout)
	billing.NewHandler(billingService).RegisterRoutes(router)

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go billing.RunDowngradeSweeper(sweeperCtx, billingService, time.Hour)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Venda back-office API starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
