package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/aitbenali/medina-journeys/internal/adapters/config"
	"github.com/aitbenali/medina-journeys/internal/adapters/database/postgres"
	stripeGateway "github.com/aitbenali/medina-journeys/internal/adapters/payment/stripe"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
	"github.com/aitbenali/medina-journeys/pkg/logger"
	"github.com/aitbenali/medina-journeys/pkg/logger/types"
)

// App holds every wired dependency of the platform.
type App struct {
	Config *config.Config
	Logger *types.Logger
	DB     *gorm.DB

	Auth          *service.AuthService
	Users         *service.UserService
	Clubs         *service.ClubService
	Events        *service.EventService
	Registrations *service.RegistrationService
	Memberships   *service.MembershipService
	Contact       *service.ContactService
	Stats         *service.StatsService
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}
	registrationLogger, err := logger.Named("registration")
	if err != nil {
		return nil, err
	}

	userStorage := postgres.NewUserStorage(cfg.Database)
	clubStorage := postgres.NewClubStorage(cfg.Database)
	eventStorage := postgres.NewEventStorage(cfg.Database)
	registrationStorage := postgres.NewRegistrationStorage(cfg.Database)
	membershipStorage := postgres.NewMembershipStorage(cfg.Database)
	contactStorage := postgres.NewContactStorage(cfg.Database)

	gateway := stripeGateway.NewGateway(cfg.StripeKey, cfg.Currency)

	return &App{
		Config: cfg,
		Logger: appLogger,
		DB:     cfg.Database,

		Auth:          service.NewAuthService(userStorage, cfg.Redis.Sessions, cfg.SessionTTL),
		Users:         service.NewUserService(userStorage),
		Clubs:         service.NewClubService(clubStorage, userStorage, membershipStorage),
		Events:        service.NewEventService(eventStorage, clubStorage),
		Registrations: service.NewRegistrationService(registrationLogger, registrationStorage, eventStorage, gateway, cfg.PaymentTimeout),
		Memberships:   service.NewMembershipService(membershipStorage, clubStorage),
		Contact:       service.NewContactService(contactStorage),
		Stats:         service.NewStatsService(eventStorage, clubStorage, userStorage),
	}, nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains it.
func (a *App) Start(handler http.Handler) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.Config.HTTPHost, a.Config.HTTPPort),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	a.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
