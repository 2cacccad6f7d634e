package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/witjaksana/loan-pricing/internal/collections"
	"github.com/witjaksana/loan-pricing/internal/config"
	"github.com/witjaksana/loan-pricing/internal/repository"
	"github.com/witjaksana/loan-pricing/internal/service"
)

func main() {
	log.Println("Starting collections scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	classifier := collections.NewClassifier(cfg.Collections.WriteOffDPD)
	collectionsService := service.NewCollectionsService(loanRepo, paymentRepo, classifier, cfg)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	setupCronJobs(c, cfg, collectionsService)

	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, collectionsService *service.CollectionsService) {
	// Daily job rolling unpaid installments into their DPD bucket. The
	// collections classifier reads these status codes, so the roll has to
	// happen before the first summary requests of the day.
	_, err := c.AddFunc(cfg.Scheduler.DPDRoll, func() {
		log.Println("Running daily payment status roll...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		updated, err := collectionsService.RollPaymentStatuses(ctx, time.Now())
		if err != nil {
			log.Printf("Payment status roll failed after %d updates: %v", updated, err)
			return
		}
		log.Printf("Payment status roll updated %d installments", updated)
	})
	if err != nil {
		log.Fatalf("Error scheduling payment status roll job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}
