package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/witjaksana/loan-pricing/internal/collections"
	"github.com/witjaksana/loan-pricing/internal/config"
	"github.com/witjaksana/loan-pricing/internal/handler"
	"github.com/witjaksana/loan-pricing/internal/pricing"
	"github.com/witjaksana/loan-pricing/internal/repository"
	"github.com/witjaksana/loan-pricing/internal/service"
	"github.com/witjaksana/loan-pricing/pkg/response"
)

func main() {
	// Load .env when present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Repositories
	offerRepo := repository.NewOfferRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	planCache := repository.NewPlanCacheRepository(redisClient, cfg.GetPlanTTL())

	// Core engines
	engine := pricing.NewEngine(pricing.Config{
		BandCount:              cfg.Pricing.BandCount,
		SmallerLoanFeeDiscount: cfg.GetSmallerLoanFeeDiscount(),
		WeeklyInstalmentDays:   cfg.Pricing.WeeklyInstalmentDays,
	})
	classifier := collections.NewClassifier(cfg.Collections.WriteOffDPD)

	// Services and handlers
	pricingService := service.NewPricingService(offerRepo, loanRepo, planCache, engine, cfg)
	collectionsService := service.NewCollectionsService(loanRepo, paymentRepo, classifier, cfg)
	pricingHandler := handler.NewPricingHandler(pricingService)
	collectionsHandler := handler.NewCollectionsHandler(collectionsService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	router := setupRoutes(pricingHandler, collectionsHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(pricingHandler *handler.PricingHandler, collectionsHandler *handler.CollectionsHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)
	router.Use(response.JSONMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/offers", pricingHandler.UpsertOffer).Methods("POST")
	api.HandleFunc("/payment_plans", pricingHandler.PaymentPlans).Methods("POST")
	api.HandleFunc("/choose_payment_plan", pricingHandler.ChoosePaymentPlan).Methods("POST")
	api.HandleFunc("/accounts/{customerId}/summary", collectionsHandler.AccountSummary).Methods("GET")

	return router
}
