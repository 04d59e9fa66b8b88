// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/config"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/db"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/security"
	sessiondomain "github.com/Toronto-Scrum-Team/registration-backend/internal/session/domain"
	sessionrepo "github.com/Toronto-Scrum-Team/registration-backend/internal/session/repository"
	sessionservice "github.com/Toronto-Scrum-Team/registration-backend/internal/session/service"
	userdomain "github.com/Toronto-Scrum-Team/registration-backend/internal/user/domain"
	userrepo "github.com/Toronto-Scrum-Team/registration-backend/internal/user/repository"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "Password123!"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	sessions := sessionrepo.NewPostgresRepository(conn)
	ctx := context.Background()

	existing, err := users.GetByEmail(ctx, devUserEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (dev@example.com exists). Skipping.")
		os.Exit(0)
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        devUserEmail,
		Name:         "Dev User",
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("create dev user: %v", err)
	}

	session := &sessiondomain.Session{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		ExpiresAt:  now.Add(cfg.SessionLifetime()),
		DeviceInfo: sessionservice.BuildDeviceInfo("seed-cli", "127.0.0.1"),
		CreatedAt:  now,
	}
	if err := sessions.Create(ctx, session); err != nil {
		log.Fatalf("create dev session: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Dev login: %s / %s\n", devUserEmail, devPassword)
}
