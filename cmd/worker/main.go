package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/rideaway/vehicle-rental/config"
	"github.com/rideaway/vehicle-rental/internal/cache"
	"github.com/rideaway/vehicle-rental/internal/email"
	"github.com/rideaway/vehicle-rental/internal/kafka"
	"github.com/rideaway/vehicle-rental/internal/repository"
	"github.com/rideaway/vehicle-rental/internal/service/booking"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.VehiclesTTLSeconds)*time.Second)

	userRepo := repository.NewUserRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	bookingService := booking.NewBookingService(
		bookingRepo,
		vehicleRepo,
		userRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingEventsTopic,
		logger,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(logger)

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn("decode event", zap.Error(err))
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			logger.Warn("consumer stopped", zap.Error(err))
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.AutoReturnSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("worker started", zap.Int("sweep_minutes", cfg.Worker.AutoReturnSweepMinutes))

	for {
		select {
		case <-sweepTicker.C:
			returned, err := bookingService.AutoReturnOverdue(ctx)
			if err != nil {
				logger.Error("auto-return sweep", zap.Error(err))
				continue
			}
			if len(returned) > 0 {
				logger.Info("auto-returned overdue bookings", zap.Int("count", len(returned)))
			}
		case s := <-sig:
			logger.Info("shutting down", zap.String("signal", s.String()))
			return
		}
	}
}
