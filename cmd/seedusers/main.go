// cmd/seedusers creates the demo admin/clerk users when the users table is
// empty. Safe to re-run.
package main

import (
	"context"

	"trastienda/internal/config"
	"trastienda/internal/infra"
	"trastienda/internal/model"
	"trastienda/internal/repository"
	"trastienda/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})

	db, err := infra.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer infra.Close(db)

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	n, err := users.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count users")
	}
	if n > 0 {
		log.Info().Int64("users", n).Msg("users already present, nothing to do")
		return
	}

	seed := []struct {
		username, password, role string
	}{
		{"admin", "admin123", model.RoleAdmin},
		{"clerk", "clerk123", model.RoleClerk},
	}

	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("bcrypt error")
		}
		if err := users.Create(ctx, &model.User{
			Username:     u.username,
			PasswordHash: string(hash),
			Role:         u.role,
			Active:       true,
		}); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("failed to create user")
		}
		log.Info().Str("username", u.username).Str("role", u.role).Msg("user created")
	}
}
