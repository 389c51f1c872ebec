package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Server captures HTTP server and database level configuration.
type Server struct {
	Addr       string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// DB_USER and DB_PASSWORD are required to connect to PostgreSQL; when either is
// absent the server falls back to in-memory stores.
func FromEnv() Server {
	return Server{
		Addr:       envOrDefault("ADDR", ":8000"),
		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBName:     envOrDefault("DB_NAME", "webapp_db"),
		DBUser:     strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
	}
}

// DatabaseConfigured reports whether the required database credentials are set.
func (s Server) DatabaseConfigured() bool {
	return s.DBUser != "" && s.DBPassword != ""
}

// DatabaseURL assembles a PostgreSQL connection URL from the configured parts.
func (s Server) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(s.DBUser),
		url.QueryEscape(s.DBPassword),
		s.DBHost,
		s.DBPort,
		s.DBName,
	)
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
