package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/camereta/studio-booking/internal/app"
	"github.com/camereta/studio-booking/internal/auth"
	"github.com/camereta/studio-booking/internal/booking"
	"github.com/camereta/studio-booking/internal/config"
	"github.com/camereta/studio-booking/internal/controller"
	"github.com/camereta/studio-booking/internal/notify"
	"github.com/camereta/studio-booking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Failed to load studio timezone", zap.Error(err))
	}

	sessionTypes := repository.NewSessionTypeRepository(pool)
	clients := repository.NewClientRepository(pool)
	reservations := repository.NewReservationRepository(pool)
	slots := repository.NewSlotRepository(pool)
	admins := repository.NewAdminUserRepository(pool)

	dispatcher := notify.NewResendDispatcher(cfg.ResendAPIKey, cfg.EmailFrom, cfg.StudioEmail, loc, logger)
	if dispatcher.Configured() {
		logger.Info("Email dispatch configured", zap.String("from", cfg.EmailFrom))
	} else {
		logger.Warn("Email dispatch disabled, set RESEND_API_KEY to enable")
	}

	reservationSvc := booking.NewReservationService(sessionTypes, clients, reservations, slots, dispatcher, loc, logger)
	calendarSvc := booking.NewCalendarService(slots, logger)
	authSvc := auth.NewService(admins, []byte(cfg.JWTSecret), logger)

	handlers := controller.NewHandlers(reservationSvc, calendarSvc, authSvc, logger)
	router := controller.NewRouter(handlers, authSvc, cfg.Environment)

	logger.Info("Starting studio booking server",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.StudioTimezone),
	)

	server := app.NewServer(cfg.Port, router, logger)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
