package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/thereayou/campusnet/internal/config"
	"github.com/thereayou/campusnet/internal/database"
	"github.com/thereayou/campusnet/internal/models"
	"github.com/thereayou/campusnet/internal/services"
	"github.com/thereayou/campusnet/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "campusnet-demo"

type seedConfig struct {
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	TokenDuration time.Duration `envconfig:"TOKEN_DURATION" default:"24h"`
}

var demoUsers = []models.User{
	{Name: "Alice Martin", Email: "alice@campus.test", Role: "Student", Bio: "CS, 3rd year"},
	{Name: "Bob Chen", Email: "bob@campus.test", Role: "Student", Bio: "Physics"},
	{Name: "Carol Diaz", Email: "carol@campus.test", Role: "Professor", Bio: "Distributed systems"},
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = config.LoadEnvFiles()

	var cfg seedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return err
	}

	db := &database.Database{}
	if err := db.Connect(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := make([]*models.User, 0, len(demoUsers))
	for _, demo := range demoUsers {
		user, err := ensureUser(ctx, db, demo, string(hash))
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	// Все демо-пользователи знакомы друг с другом
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			if err := db.AddAcquaintances(ctx, users[i].ID, users[j].ID); err != nil {
				return fmt.Errorf("link %s and %s: %w", users[i].Email, users[j].Email, err)
			}
		}
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	for _, user := range users {
		token, err := jwtMgr.Generate(user.ID.String())
		if err != nil {
			return fmt.Errorf("token for %s: %w", user.Email, err)
		}
		fmt.Printf("%-20s %s\n  token: %s\n", user.Email, user.ID, token)
	}
	return nil
}

func ensureUser(ctx context.Context, db *database.Database, demo models.User, passwordHash string) (*models.User, error) {
	existing, err := db.FindUserByEmail(ctx, demo.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, services.ErrNotFound) {
		return nil, fmt.Errorf("find %s: %w", demo.Email, err)
	}

	user := demo
	user.PasswordHash = passwordHash
	user.CreatedAt = time.Now().UTC()
	if err := db.SaveUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("create %s: %w", demo.Email, err)
	}
	return &user, nil
}
