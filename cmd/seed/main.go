package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"socialhub/internal/config"
	"socialhub/internal/database"
	"socialhub/internal/domain/friendship"
	"socialhub/internal/domain/user"
	"socialhub/internal/server"
)

var demoUsers = []user.CreateInput{
	{Name: "admin", Password: "admin12345", Description: "Site administrator", Role: user.RoleAdmin},
	{Name: "alice", Password: "alice12345", Description: "Photographer from the coast"},
	{Name: "bob", Password: "bob1234567", Description: "Posts mostly cats", IsBot: true},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("seed completed")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, !cfg.Debug)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(cfg.DataDirectory, 0o755); err != nil {
		return err
	}
	users := user.NewService(user.NewRepository(db), fs, user.NewLayout(cfg.DataDirectory), logger)

	ids := make(map[string]int64, len(demoUsers))
	for _, in := range demoUsers {
		u, err := users.Create(ctx, in)
		if errors.Is(err, user.ErrNameTaken) {
			logger.Info("user already present", slog.String("user_name", in.Name))
			u, err = users.GetByName(ctx, in.Name)
		}
		if err != nil {
			return err
		}
		ids[u.Name] = u.ID
		logger.Info("seeded user", slog.String("user_name", u.Name), slog.Int64("id", u.ID))
	}

	friends := friendship.NewRepository(db)
	err = friends.Create(ctx, ids["alice"], ids["bob"])
	if err != nil && !errors.Is(err, friendship.ErrAlreadyFriends) {
		return err
	}
	logger.Info("alice and bob are friends")
	return nil
}
