package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rideaway/vehicle-rental/config"
	"github.com/rideaway/vehicle-rental/internal/bootstrap"
	"github.com/rideaway/vehicle-rental/internal/cache"
	"github.com/rideaway/vehicle-rental/internal/kafka"
	"github.com/rideaway/vehicle-rental/internal/repository"
	authsvc "github.com/rideaway/vehicle-rental/internal/service/auth"
	"github.com/rideaway/vehicle-rental/internal/service/booking"
	"github.com/rideaway/vehicle-rental/internal/service/users"
	"github.com/rideaway/vehicle-rental/internal/service/vehicles"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.VehiclesTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	authService := authsvc.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, cfg.Auth.BcryptCost)
	vehicleService := vehicles.NewVehicleService(vehicleRepo, redisCache)
	userService := users.NewUserService(userRepo)
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

	deps := bootstrap.Deps{
		Users:    userRepo,
		Auth:     authService,
		Vehicles: vehicleService,
		UserSvc:  userService,
		Bookings: bookingService,
		Log:      logger,
	}

	logger.Info("starting server", zap.String("address", cfg.HTTP.Address))
	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
