package config

import (
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/juju/errors"
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.Annotate(err, "reading environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return errors.NotValidf("env %q", c.Env)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Postgres.Database == "" {
			return errors.NotValidf("empty POSTGRES_DATABASE")
		}
	case DriverSQLite:
	default:
		return errors.NotValidf("database driver %q", c.Database.Driver)
	}

	if len(c.JWT.Secret) < 16 {
		return errors.NotValidf("JWT_SECRET shorter than 16 bytes")
	}
	if strings.TrimSpace(c.CORSOrigin) == "" {
		return errors.NotValidf("empty CORS_ORIGIN")
	}
	if err := c.CORS().Validate(); err != nil {
		return errors.NewNotValid(err, "CORS_ORIGIN")
	}
	return nil
}
