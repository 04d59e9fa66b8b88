package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "registration-backend" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "registration-backend")
	}
	if cfg.AccessTokenTTL != "30m" {
		t.Errorf("AccessTokenTTL = %q, want %q", cfg.AccessTokenTTL, "30m")
	}
	if cfg.SessionTTL != "168h" {
		t.Errorf("SessionTTL = %q, want %q", cfg.SessionTTL, "168h")
	}
	if cfg.SweepInterval != "24h" {
		t.Errorf("SweepInterval = %q, want %q", cfg.SweepInterval, "24h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.EventsKafkaTopic != "registration-events" {
		t.Errorf("EventsKafkaTopic = %q, want default", cfg.EventsKafkaTopic)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "14")
	os.Setenv("ACCESS_TOKEN_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	if got := cfg.AccessTTL(); got != 5*time.Minute {
		t.Errorf("AccessTTL() = %v, want 5m", got)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load without JWT_SECRET should fail")
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("BCRYPT_COST", "99")

	if _, err := Load(); err == nil {
		t.Fatal("Load with BCRYPT_COST=99 should fail")
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := &Config{AccessTokenTTL: "garbage", SessionTTL: "", SweepInterval: "-1h"}
	if got := cfg.AccessTTL(); got != 30*time.Minute {
		t.Errorf("AccessTTL() = %v, want 30m fallback", got)
	}
	if got := cfg.SessionLifetime(); got != 168*time.Hour {
		t.Errorf("SessionLifetime() = %v, want 168h fallback", got)
	}
	if got := cfg.SweepEvery(); got != 24*time.Hour {
		t.Errorf("SweepEvery() = %v, want 24h fallback", got)
	}
}

func TestEventsKafkaBrokersList(t *testing.T) {
	cfg := &Config{EventsKafkaBrokers: " localhost:9092 , broker2:9092,, "}
	got := cfg.EventsKafkaBrokersList()
	if len(got) != 2 || got[0] != "localhost:9092" || got[1] != "broker2:9092" {
		t.Errorf("EventsKafkaBrokersList() = %v", got)
	}
	cfg = &Config{}
	if got := cfg.EventsKafkaBrokersList(); got != nil {
		t.Errorf("empty brokers should return nil, got %v", got)
	}
}
