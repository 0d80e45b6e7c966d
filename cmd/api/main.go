package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Jogoraa/Woliso-Rentals/internal/auth"
	"github.com/Jogoraa/Woliso-Rentals/internal/httpapi"
	"github.com/Jogoraa/Woliso-Rentals/internal/user"
	"github.com/Jogoraa/Woliso-Rentals/pkg/config"
	"github.com/Jogoraa/Woliso-Rentals/pkg/db"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer conn.Close()

	if cfg.MigrationsPath != "" {
		if err := db.Migrate(cfg.MigrationsPath, cfg); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	if err := bootstrapAdmin(ctx, user.NewRepository(conn), cfg); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg: cfg,
		DB:  conn,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("http listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
}

// bootstrapAdmin creates the default administrator on first start so the
// approval workflow is usable before any manual setup.
func bootstrapAdmin(ctx context.Context, users *user.Repository, cfg config.Config) error {
	if _, err := users.FindByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := &user.User{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		FullName:     "System Administrator",
		Role:         user.RoleAdmin,
		PasswordHash: hash,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("default admin user created: %s", cfg.AdminEmail)
	return nil
}
