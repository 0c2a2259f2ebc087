package postgres

import (
	"context"
	"errors"
	"time"

	"reviewhub/proj/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	Conn *pgxpool.Pool
}

const ErrConflictCode = "23505"

// constraintFields maps unique-constraint names from migrations to the
// field reported back to the caller on a conflict.
var constraintFields = map[string]string{
	"users_username_key":       "username",
	"users_email_key":          "email",
	"categories_slug_key":      "slug",
	"genres_slug_key":          "slug",
	"reviews_author_title_key": "review",
}

func New(ctx context.Context, dsn string, maxConns int, maxConnIdleTime time.Duration) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = maxConnIdleTime
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	return &Storage{Conn: pool}, nil
}

// MapConflict translates a postgres unique violation into a storage
// ConflictError naming the colliding field. Other errors pass through.
func MapConflict(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == ErrConflictCode {
		field, ok := constraintFields[pgxErr.ConstraintName]
		if !ok {
			return storage.ErrConflict
		}
		return &storage.ConflictError{Field: field}
	}
	return err
}
