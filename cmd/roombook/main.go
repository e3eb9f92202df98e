package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/room-booking/internal/application"
	"github.com/example/room-booking/internal/config"
	httptransport "github.com/example/room-booking/internal/http"
	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/persistence/memory"
	"github.com/example/room-booking/internal/persistence/sqlite"
)

type storage interface {
	persistence.RoomRepository
	persistence.BookingRepository
	persistence.SessionRepository
	Migrate(ctx context.Context) error
	Close() error
}

func main() {
	// A missing .env file is fine; the real environment still applies.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStorage(cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	if cfg.SeedRooms {
		seeded, err := persistence.SeedRooms(ctx, store)
		if err != nil {
			logger.Error("failed to seed rooms", "error", err)
			os.Exit(1)
		}
		if len(seeded) > 0 {
			logger.Info("seeded default rooms", "count", len(seeded))
		}
	}

	adminHash, err := application.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.Error("failed to hash admin password", "error", err)
		os.Exit(1)
	}

	version := &application.StoreVersion{}

	authService := application.NewAuthServiceWithLogger(store, adminHash, uuid.NewString, time.Now, cfg.SessionTTL, logger)
	roomService := application.NewRoomServiceWithLogger(store, version, logger)
	availabilityService := application.NewAvailabilityServiceWithLogger(store, store, logger)
	bookingService := application.NewBookingServiceWithLogger(store, store, availabilityService, version, logger)
	eventService := application.NewEventServiceWithLogger(store, store, version, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(authService, logger),
		Rooms:        httptransport.NewRoomHandler(roomService, logger),
		Bookings:     httptransport.NewBookingHandler(bookingService, logger),
		Availability: httptransport.NewAvailabilityHandler(availabilityService, logger),
		Events:       httptransport.NewEventHandler(eventService, logger),
		AdminGuard:   httptransport.RequireAdmin(authService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("room booking API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func openStorage(cfg config.Config, logger *slog.Logger) (storage, error) {
	if cfg.SQLiteDSN == "" {
		logger.Info("using in-memory storage, data will not survive restarts")
		return memory.Open(), nil
	}
	logger.Info("using sqlite storage", "dsn", cfg.SQLiteDSN)
	return sqlite.Open(cfg.SQLiteDSN)
}
