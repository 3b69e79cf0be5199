package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	// APIBaseURL is the remote storefront backend, e.g. https://api.peakform.fit.
	APIBaseURL string

	// StateDBPath is the SQLite file holding durable client state (session).
	StateDBPath string

	// DeliveryFee is the flat shipping fee added to non-empty carts.
	DeliveryFee float64
	Currency    string

	Auth0    Auth0Config
	Razorpay RazorpayConfig
	Mirror   MirrorConfig
}

// Auth0Config contains the identity-provider parameters for the implicit flow.
type Auth0Config struct {
	Domain      string
	ClientID    string
	RedirectURI string
}

// RazorpayConfig contains the publishable key handed to the hosted checkout.
type RazorpayConfig struct {
	KeyID string
}

// MirrorConfig tunes the best-effort cart mirror queue.
type MirrorConfig struct {
	QueueSize   int
	CallTimeout time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Port = getEnv("PORT", "7700")
	cfg.Env = getEnv("ENV", "development")
	cfg.APIBaseURL = getEnv("API_BASE_URL", "")
	cfg.StateDBPath = getEnv("STATE_DB_PATH", "storefront.db")
	cfg.Currency = getEnv("CURRENCY", "INR")

	cfg.Auth0 = Auth0Config{
		Domain:      getEnv("AUTH0_DOMAIN", ""),
		ClientID:    getEnv("AUTH0_CLIENT_ID", ""),
		RedirectURI: getEnv("AUTH0_REDIRECT_URI", "http://localhost:7700/auth/callback"),
	}

	cfg.Razorpay = RazorpayConfig{
		KeyID: getEnv("RAZORPAY_KEY_ID", ""),
	}

	cfg.Mirror = MirrorConfig{
		QueueSize: getEnvInt("MIRROR_QUEUE_SIZE", 64),
	}

	var err error
	if cfg.DeliveryFee, err = parseFloatEnv("DELIVERY_FEE", "10"); err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_FEE: %w", err)
	}
	if cfg.Mirror.CallTimeout, err = parseDurationEnv("MIRROR_CALL_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid MIRROR_CALL_TIMEOUT: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL must be set to the storefront backend URL")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseFloatEnv reads an environment variable and parses it as a float.
// If the variable is empty, it falls back to the provided default value.
func parseFloatEnv(key, def string) (float64, error) {
	raw := getEnv(key, def)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("value must be >= 0")
	}
	return f, nil
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
