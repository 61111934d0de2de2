package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"backoffice/internal/auth"
	"backoffice/internal/config"
	"backoffice/internal/httpserver"
	"backoffice/internal/logger"
	"backoffice/internal/models"
	"backoffice/internal/service"
	"backoffice/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	lg := logger.New(cfg)
	defer lg.Sync()

	if cfg.DatabaseURL == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		lg.Fatalw("JWT_SECRET is empty")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.ActivityLog{}); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}

	st := store.NewGorm(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	seedDefaultAdmin(st, hasher, lg)

	router := httpserver.NewRouter(httpserver.Deps{
		Config:    cfg,
		Logger:    lg,
		Tokens:    tokens,
		Auth:      service.NewAuth(st, tokens, hasher, lg),
		Users:     service.NewUsers(st, hasher, lg),
		Dashboard: service.NewDashboard(st, lg),
	})

	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}

// seedDefaultAdmin guarantees at least one admin account exists, so a
// fresh deployment can be logged into and managed.
func seedDefaultAdmin(st store.Store, hasher auth.Hasher, lg *zap.SugaredLogger) {
	ctx := context.Background()
	count, err := st.CountAdmins(ctx)
	if err != nil {
		lg.Fatalw("admin count failed", "error", err)
	}
	if count > 0 {
		return
	}
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		lg.Warnw("no admin account and no ADMIN_EMAIL/ADMIN_PASSWORD set, skipping seed")
		return
	}
	hash, err := hasher.HashPassword(password)
	if err != nil {
		lg.Fatalw("admin seed hash failed", "error", err)
	}
	now := time.Now()
	u := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := st.CreateUser(ctx, &u); err != nil {
		lg.Fatalw("admin seed failed", "error", err)
	}
	lg.Infow("seeded default admin", "email", email)
}
