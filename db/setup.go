package db

import (
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/monocle-dev/opsdesk/internal/config"
	"github.com/monocle-dev/opsdesk/internal/models"
)

// ConnectDatabase opens the store named by cfg. The returned handle owns
// the process-wide connection pool.
func ConnectDatabase(cfg config.DatabaseConfig, clk clock.Clock) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Postgres.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, errors.NotValidf("database driver %q", cfg.Driver)
	}

	db, err := Open(dialector, clk)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return db, nil
}

// Open wraps gorm.Open with the settings every store shares: driver errors
// are translated into gorm's sentinel errors and timestamps come from clk.
func Open(dialector gorm.Dialector, clk clock.Clock) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return clk.Now().UTC()
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Annotate(err, "opening database")
	}
	return db, nil
}

func MigrateDatabase(db *gorm.DB) error {
	for _, model := range models.All() {
		if err := db.AutoMigrate(model); err != nil {
			return errors.Annotatef(err, "migrating %T", model)
		}
	}

	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Trace(err)
	}
	return sqlDB.Close()
}
