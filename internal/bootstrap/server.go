package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rideaway/vehicle-rental/api"
	"github.com/rideaway/vehicle-rental/config"
	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/repository"
	authsvc "github.com/rideaway/vehicle-rental/internal/service/auth"
	"github.com/rideaway/vehicle-rental/internal/service/booking"
	"github.com/rideaway/vehicle-rental/internal/service/users"
	"github.com/rideaway/vehicle-rental/internal/service/vehicles"
)

type Deps struct {
	Users    repository.UserRepository
	Auth     authsvc.AuthUseCase
	Vehicles vehicles.VehicleUseCase
	UserSvc  users.UserUseCase
	Bookings booking.BookingUseCase
	Log      *zap.Logger
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, deps),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Log != nil {
		router.Use(api.RequestLogger(deps.Log))
	}
	router.NoRoute(api.NotFoundHandler)

	authn := api.Authenticate(deps.Users, cfg.Auth.JWTSecret)
	adminOnly := api.RequireRoles(domain.RoleAdmin)

	api.NewAuthHandler(deps.Auth).Register(router.Group("/auth"))
	api.NewVehicleHandler(deps.Vehicles).Register(router.Group("/vehicles"), authn, adminOnly)
	api.NewUserHandler(deps.UserSvc).Register(router.Group("/users"), authn, adminOnly)
	api.NewBookingHandler(deps.Bookings).Register(router.Group("/bookings"), authn)

	return router
}
