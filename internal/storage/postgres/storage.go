package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polkiloo/drinkshop/internal/domain/model"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage keeps the order event journal in PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type journalRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Journal() repository.JournalRepository {
	return &journalRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS order_events (
            id UUID PRIMARY KEY,
            kind TEXT NOT NULL,
            order_id TEXT NOT NULL,
            owner TEXT NOT NULL,
            occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_order_events_owner ON order_events(owner, occurred_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// Append stores the event once; replays of the same id are ignored.
func (r *journalRepository) Append(ctx context.Context, event model.OrderEvent) error {
	const query = `INSERT INTO order_events (id, kind, order_id, owner, occurred_at)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (id) DO NOTHING`
	_, err := r.storage.pool.Exec(ctx, query, event.ID.String(), string(event.Kind), event.OrderID, event.Owner, event.OccurredAt)
	if err != nil {
		r.storage.logger.Error("append order event failed",
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (r *journalRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]model.OrderEvent, error) {
	const query = `SELECT id, kind, order_id, owner, occurred_at
                   FROM order_events WHERE owner=$1 ORDER BY occurred_at DESC LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderEvent
	for rows.Next() {
		var (
			e    model.OrderEvent
			id   string
			kind string
		)
		if err := rows.Scan(&id, &kind, &e.OrderID, &e.Owner, &e.OccurredAt); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse event id: %w", err)
		}
		e.Kind = model.OrderEventKind(kind)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
