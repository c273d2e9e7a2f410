package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
)

// Postgres implements Store on top of a Postgres database. Every
// successful mutation publishes a change event for its table; publish
// failures are logged, never returned, because the write itself
// succeeded and subscribers converge on the next event.
type Postgres struct {
	db   *sql.DB
	feed notify.Publisher
	log  *logrus.Logger
}

func NewPostgres(db *sql.DB, feed notify.Publisher, log *logrus.Logger) *Postgres {
	return &Postgres{db: db, feed: feed, log: log}
}

func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return db, nil
}

func (s *Postgres) RunMigrations(migrationsPath string) error {
	driver, err := postgres.WithInstance(s.db, &postgres.Config{
		MigrationsTable: "storefront_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (s *Postgres) Close() error {
	return s.db.Close()
}

func (s *Postgres) publish(ctx context.Context, table string, op notify.Op, id string) {
	if s.feed == nil {
		return
	}
	ev := notify.Event{Table: table, Op: op, ID: id}
	if err := s.feed.Publish(ctx, ev); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"table": table,
			"op":    op,
		}).Warn("change feed publish failed")
	}
}
