package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Toronto-Scrum-Team/registration-backend/internal/auth/service"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/config"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/db"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/security"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/server"
	sessionrepo "github.com/Toronto-Scrum-Team/registration-backend/internal/session/repository"
	sessionservice "github.com/Toronto-Scrum-Team/registration-backend/internal/session/service"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry/otel"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry/producer"
	userrepo "github.com/Toronto-Scrum-Team/registration-backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "registration-backend", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	sessions := sessionrepo.NewPostgresRepository(conn)

	manager := sessionservice.NewManager(sessions, cfg.SessionLifetime())
	hasher := security.NewHasher(cfg.BcryptCost)
	codec := security.NewTokenCodec([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.AccessTTL())
	auth := service.NewAuthService(users, manager, hasher, codec, cfg.AccessTTL())

	emitters := telemetry.MultiEmitter{otel.NewEventEmitter(providers.LoggerProvider)}
	kafkaProducer, err := producer.NewKafkaProducer(cfg.EventsKafkaBrokersList(), cfg.EventsKafkaTopic)
	if err != nil {
		log.Fatalf("kafka: %v", err)
	}
	if kafkaProducer != nil {
		emitters = append(emitters, kafkaProducer)
		defer kafkaProducer.Close()
	}

	srv := server.New(cfg.HTTPAddr, auth, manager, emitters)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepLoop(sweepCtx, manager, cfg.SweepEvery())

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	stopSweep()

	// Give in-flight async telemetry emits time to finish before the
	// providers flush and close.
	time.Sleep(telemetry.ShutdownDrainDuration)
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("otel shutdown: %v", err)
	}
	log.Println("HTTP server stopped")
}

// sweepLoop deletes expired sessions on a fixed interval until ctx is done.
func sweepLoop(ctx context.Context, manager *sessionservice.Manager, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := manager.SweepExpired(ctx)
			if err != nil {
				log.Printf("sweep: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("sweep: removed %d expired sessions", n)
			}
		}
	}
}
