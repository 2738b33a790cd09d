package kv

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PostgresStore keeps entries in a two-column table. Values are stored as
// JSONB, so only JSON documents can be written.
type PostgresStore struct {
	db    *pgxpool.Pool
	table string
}

func NewPostgresStore(db *pgxpool.Pool, table string) (*PostgresStore, error) {
	if table == "" {
		table = "kv_store"
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("kv: invalid table name %q", table)
	}
	return &PostgresStore{db: db, table: pgx.Identifier{table}.Sanitize()}, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL
	)`, s.table))
	return err
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, fmt.Sprintf(`SELECT value FROM %s WHERE key=$1`, s.table), key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, s.table), key, value)
	return err
}

func (s *PostgresStore) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	cmd, err := s.db.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING`, s.table), key, value)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (s *PostgresStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`SELECT key, value FROM %s
		WHERE key LIKE $1 ESCAPE '\' ORDER BY key COLLATE "C"`, s.table), escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Update locks the row for the duration of fn. A missing row is inserted
// with ON CONFLICT DO NOTHING and the whole step is retried if another
// writer created it first.
func (s *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	for i := 0; i < maxUpdateRetries; i++ {
		done, err := s.updateOnce(ctx, key, fn)
		if err != nil {
			if errors.Is(err, ErrSkip) {
				return nil
			}
			return err
		}
		if done {
			return nil
		}
	}
	return fmt.Errorf("kv: update %q: gave up after %d conflicting attempts", key, maxUpdateRetries)
}

func (s *PostgresStore) updateOnce(ctx context.Context, key string, fn UpdateFunc) (bool, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var current []byte
	err = tx.QueryRow(ctx, fmt.Sprintf(`SELECT value FROM %s WHERE key=$1 FOR UPDATE`, s.table), key).Scan(&current)
	exists := true
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return false, err
		}
		exists = false
		current = nil
	}

	next, err := fn(current)
	if err != nil {
		return false, err
	}

	if exists {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET value=$2 WHERE key=$1`, s.table), key, next); err != nil {
			return false, err
		}
	} else {
		cmd, err := tx.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING`, s.table), key, next)
		if err != nil {
			return false, err
		}
		if cmd.RowsAffected() == 0 {
			return false, nil
		}
	}
	return true, tx.Commit(ctx)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ Store = (*PostgresStore)(nil)
