// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"gorm.io/gorm"

	"user_backend/internal/app/config"
	"user_backend/internal/app/router"
	authhandler "user_backend/internal/feature/auth/transport/handler"
	authusecase "user_backend/internal/feature/auth/usecase"
	usersadapters "user_backend/internal/feature/users/adapters"
	usershandler "user_backend/internal/feature/users/transport/handler"
	usersusecase "user_backend/internal/feature/users/usecase"
	"user_backend/internal/platform/db"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/password"
)

// NewTokenManager creates the JWT manager from configuration.
func NewTokenManager(cfg config.Config) *jwtmw.Manager {
	return jwtmw.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
}

// NewRouterDeps wires repositories, usecases and handlers on top of gdb.
func NewRouterDeps(cfg config.Config, gdb *gorm.DB, logger *slog.Logger) router.Deps {
	tokens := NewTokenManager(cfg)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)

	// Repository
	userRepo := usersadapters.NewUserGorm(gdb)

	// Usecase
	usersUC := usersusecase.NewUserUsecase(userRepo, hasher)
	authUC := authusecase.NewAuthUsecase(usersUC, hasher, tokens)

	return router.Deps{
		Auth:        authhandler.NewAuthHandler(authUC),
		Users:       usershandler.NewUserHandler(usersUC),
		Verifier:    tokens,
		DB:          db.NewPinger(gdb),
		Logger:      logger,
		CORSEnabled: cfg.CORSEnabled,
	}
}
