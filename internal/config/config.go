package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by NOTELY_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("NOTELY_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; real env vars win since godotenv never overrides.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// MigrateOnStart reports whether the server applies pending migrations before serving.
func MigrateOnStart() bool {
	v, err := strconv.ParseBool(os.Getenv("MIGRATE_ON_START"))
	return err == nil && v
}

// JWTSecret returns the HMAC secret for session tokens. Empty means unset.
func JWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

// JWTIssuer returns the iss claim. Defaults to "notely".
func JWTIssuer() string {
	iss := os.Getenv("JWT_ISSUER")
	if iss == "" {
		return "notely"
	}
	return iss
}

// JWTTTL returns the session token lifetime.
// Defaults to 12h if unset or invalid.
func JWTTTL() time.Duration {
	d, err := time.ParseDuration(os.Getenv("JWT_TTL"))
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

// BcryptCost returns the bcrypt cost factor. Defaults to 10.
func BcryptCost() int {
	cost, err := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	if err != nil || cost <= 0 {
		return 10
	}
	return cost
}

// InviteDefaultPassword is the password given to invited users until an
// emailed invite flow exists. Not suitable for production.
func InviteDefaultPassword() string {
	p := os.Getenv("INVITE_DEFAULT_PASSWORD")
	if p == "" {
		return "password"
	}
	return p
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
