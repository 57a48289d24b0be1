package config

import (
	"fmt"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env        string `env:"ENV" env-default:"local"`
	HTTP       HTTPConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	CORSOrigin string `env:"CORS_ORIGIN" env-default:"http://localhost:5173"`

	// AuthRoutes lists "entity.op" patterns that require a bearer token,
	// e.g. "project.get" or "*.delete".
	AuthRoutes []string `env:"AUTH_ROUTES" env-separator:"," env-default:"*.get"`
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:""`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER" env-default:"postgres"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	SQLitePath   string `env:"SQLITE_PATH" env-default:"opsdesk.db"`
	Postgres     PostgresConfig
}

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     int    `env:"POSTGRES_PORT" env-default:"5432"`
	Username string `env:"POSTGRES_USERNAME"`
	Password string `env:"POSTGRES_PASSWORD"`
	Database string `env:"POSTGRES_DATABASE"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" env-required:"true"`
	Issuer string        `env:"JWT_ISSUER" env-default:"opsdesk"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"168h"`
}
