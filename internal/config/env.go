package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	// AtomicBookings selects the transactional booking-create path. When
	// false the writer uses the sequential path from the start.
	AtomicBookings bool
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	if dbUser == "" {
		dbUser = "root"
	}
	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	if dbHost == "" {
		dbHost = "127.0.0.1:3306"
	}
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		dbName = "dirba_amba"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	atomic := true
	if v := strings.TrimSpace(os.Getenv("ATOMIC_BOOKINGS")); v != "" {
		atomic = !(v == "0" || strings.EqualFold(v, "false") || strings.EqualFold(v, "off"))
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:         dbUser,
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         dbHost,
		DBName:         dbName,
		JWTSecret:      secret,
		AtomicBookings: atomic,
	}
}
