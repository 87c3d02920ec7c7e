// Package postgres holds the gorm-backed repositories. Production runs on
// Postgres through lib/pq; a sqlite: DSN selects an embedded SQLite file for
// local development and tests.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/follows"
	"Hearth/internal/core/likes"
	"Hearth/internal/core/notifications"
	"Hearth/internal/core/posts"
	"Hearth/internal/core/users"
	"Hearth/internal/db/migrations"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Options tune the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Debug           bool
	// Migrate applies pending migrations after connecting.
	Migrate bool
}

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&users.User{},
		&posts.Post{},
		&comments.Comment{},
		&likes.Like{},
		&follows.Follow{},
		&notifications.Notification{},
	}
}

// Open connects to the datastore named by dsn.
func Open(ctx context.Context, dsn string, opts Options) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if opts.Debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		return openSQLite(path, cfg, opts)
	}

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	configurePool(sqlDB, opts)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if opts.Migrate {
		if err := migrations.Up(sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), cfg)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return db, nil
}

func openSQLite(path string, cfg *gorm.Config, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection also keeps :memory:
	// databases from splitting per connection.
	sqlDB.SetMaxOpenConns(1)

	if opts.Migrate {
		if err := db.AutoMigrate(Models()...); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}
	return db, nil
}

func configurePool(sqlDB *sql.DB, opts Options) {
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection, used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
