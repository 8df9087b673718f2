package main

import (
	"context"
	"log"
	"os"

	"github.com/camereta/studio-booking/internal/app"
	"github.com/camereta/studio-booking/internal/config"
	"github.com/camereta/studio-booking/internal/model"
	"github.com/camereta/studio-booking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the session type catalog and the initial admin user. Safe to run
// repeatedly; existing rows are left untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	sessionTypes := repository.NewSessionTypeRepository(pool)

	catalog := []*model.SessionType{
		{Name: "navidad", Description: "Sessió fotogràfica de Nadal", DurationMinutes: 60, Price: 150, Active: true},
		{Name: "familia", Description: "Sessió fotogràfica familiar", DurationMinutes: 90, Price: 200, Active: true},
		{Name: "embarazo", Description: "Sessió fotogràfica d'embaràs", DurationMinutes: 60, Price: 180, Active: true},
		{Name: "pareja", Description: "Sessió fotogràfica de parella", DurationMinutes: 60, Price: 150, Active: true},
		{Name: "producto", Description: "Fotografia de producte", DurationMinutes: 120, Price: 250, Active: true},
	}

	for _, st := range catalog {
		created, err := sessionTypes.Upsert(ctx, st)
		if err != nil {
			logger.Fatal("Failed to seed session type", zap.String("name", st.Name), zap.Error(err))
		}
		if created {
			logger.Info("Session type created", zap.String("name", st.Name))
		} else {
			logger.Info("Session type already exists", zap.String("name", st.Name))
		}
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@lacamereta.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		logger.Fatal("ADMIN_PASSWORD is required to seed the admin user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("Failed to hash admin password", zap.Error(err))
	}

	admins := repository.NewAdminUserRepository(pool)
	created, err := admins.Upsert(ctx, &model.AdminUser{
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         "admin",
	})
	if err != nil {
		logger.Fatal("Failed to seed admin user", zap.Error(err))
	}
	if created {
		logger.Info("Admin user created", zap.String("email", adminEmail))
	} else {
		logger.Info("Admin user already exists", zap.String("email", adminEmail))
	}

	logger.Info("Seed completed")
}
