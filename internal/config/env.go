package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	RedisAddr string

	JWTSecret []byte

	// SeatLockWait bounds how long a reservation waits for its
	// per-journey critical section before giving up.
	SeatLockWait time.Duration
}

// Loaded holds the active environment after LoadEnv, for call sites
// that cannot receive it via parameters (handler package globals).
var Loaded Env

func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr:      getenv("APP_ADDR", ":8080"),
		GinMode:      strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:       getenv("DB_USER", "root"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBHost:       getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:       getenv("DB_NAME", "bus_booking"),
		RedisAddr:    getenv("REDIS_ADDR", "127.0.0.1:6379"),
		JWTSecret:    []byte(getenv("JWT_SECRET", "change-me-in-production")),
		SeatLockWait: 2 * time.Second,
	}

	if ms := strings.TrimSpace(os.Getenv("SEAT_LOCK_WAIT_MS")); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			env.SeatLockWait = time.Duration(v) * time.Millisecond
		}
	}

	Loaded = env
	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
