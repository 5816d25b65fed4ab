package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flyflex/config"
	"github.com/Domenick1991/flyflex/internal/bootstrap"
	"github.com/Domenick1991/flyflex/internal/cache"
	"github.com/Domenick1991/flyflex/internal/kafka"
	"github.com/Domenick1991/flyflex/internal/reference"
	"github.com/Domenick1991/flyflex/internal/repository"
	"github.com/Domenick1991/flyflex/internal/service/booking"
	"github.com/Domenick1991/flyflex/internal/service/bookingquery"
	"github.com/Domenick1991/flyflex/internal/service/search"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Search.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	searchService := search.NewSearchService(flightRepo, redisCache, cfg.Search.BroadLimit)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		reference.New(),
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithReferenceAttempts(cfg.Booking.ReferenceAttempts),
	)
	queryService := bookingquery.NewQueryService(bookingRepo, redisCache)

	if err := bootstrap.Run(ctx, cfg, searchService, bookingService, queryService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
