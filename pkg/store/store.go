// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mchmarny/recipebox/pkg/defaults"
	apperrors "github.com/mchmarny/recipebox/pkg/errors"
	"github.com/mchmarny/recipebox/pkg/logging"
	"github.com/mchmarny/recipebox/pkg/recipe"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultSQLitePath  = "recipebox.db"
	slowQueryThreshold = 500 * time.Millisecond
)

// Config selects and configures the database.
type Config struct {
	// Driver is either "sqlite" or "postgres". Empty means sqlite.
	Driver string `json:"driver" yaml:"driver"`

	// DSN is a file path for sqlite or a connection URL for postgres.
	DSN string `json:"dsn" yaml:"dsn"`

	// ConnectTimeout bounds startup connectivity retries for postgres.
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`

	// Debug logs every statement.
	Debug bool `json:"debug" yaml:"debug"`
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Driver {
	case "", DriverSQLite:
	case DriverPostgres:
		if c.DSN == "" {
			return apperrors.BadRequest("database dsn is required for driver %q", c.Driver)
		}
	default:
		return apperrors.BadRequest("unsupported database driver %q", c.Driver)
	}
	return nil
}

// Open connects to the configured database. Postgres connectivity is retried
// with exponential backoff until ConnectTimeout elapses.
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{
		Logger:         newLogger(cfg.Debug),
		TranslateError: true,
	}

	if cfg.Driver == DriverPostgres {
		return openPostgres(ctx, cfg, gcfg)
	}
	return openSQLite(ctx, cfg, gcfg)
}

func openSQLite(ctx context.Context, cfg Config, gcfg *gorm.Config) (*gorm.DB, error) {
	path := cfg.DSN
	if path == "" {
		path = defaultSQLitePath
	}

	db, err := gorm.Open(sqlite.Open(SQLiteDSN(path)), gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite connection: %w", err)
	}
	// SQLite supports a single writer; one connection keeps transactions serialized.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	var fk int
	if err := db.WithContext(ctx).Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to read foreign_keys pragma: %w", err)
	}
	if fk != 1 {
		_ = sqlDB.Close()
		return nil, errors.New("sqlite foreign key enforcement is disabled")
	}

	slog.Debug("database opened", "driver", DriverSQLite, "path", path)
	return db, nil
}

// SQLiteDSN returns the connection string for a database file with foreign
// keys, WAL journaling and the busy timeout enabled.
func SQLiteDSN(path string) string {
	q := url.Values{}
	q.Set("_foreign_keys", "1")
	q.Set("_journal_mode", "WAL")
	q.Set("_synchronous", "NORMAL")
	q.Set("_busy_timeout", fmt.Sprint(defaults.DBBusyTimeout))

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + q.Encode()
}

func openPostgres(ctx context.Context, cfg Config, gcfg *gorm.Config) (*gorm.DB, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaults.DBConnectTimeout
	}

	connect := func() (*gorm.DB, error) {
		db, err := gorm.Open(postgres.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		sqlDB.SetMaxOpenConns(defaults.DBMaxOpenConns)
		sqlDB.SetConnMaxLifetime(defaults.DBConnMaxLifetime)
		return db, nil
	}

	db, err := backoff.Retry(ctx, connect,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(timeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Warn("database not reachable, retrying", "error", err, "retryIn", next)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	slog.Debug("database opened", "driver", DriverPostgres)
	return db, nil
}

// Migrate creates or updates the recipe tables plus any extra models.
func Migrate(ctx context.Context, db *gorm.DB, extra ...any) error {
	models := append(recipe.Models(), extra...)
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsDuplicate reports whether err is a unique or primary key violation.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func newLogger(debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(logging.NewLogLogger(slog.LevelWarn, false), logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
}

// notFound replaces any lookup error with NOT_FOUND, keeping the cause.
func notFound(entity string, id any, cause error) error {
	return apperrors.WrapWithContext(apperrors.ErrCodeNotFound,
		fmt.Sprintf("%s not found: %v", entity, id), cause,
		map[string]any{"entity": entity, "id": id})
}
