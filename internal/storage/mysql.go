package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/circumplex/internal/database"
)

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// MySQLStore keeps values in a two-column table keyed by name.
type MySQLStore struct {
	db    *sqlx.DB
	table string
}

// NewMySQLStore creates a MySQLStore over table.
func NewMySQLStore(db *sqlx.DB, table string) (*MySQLStore, error) {
	if !tablePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &MySQLStore{db: db, table: table}, nil
}

// EnsureSchema creates the table when it does not exist.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	query := "CREATE TABLE IF NOT EXISTS " + s.table + ` (
	name VARCHAR(64) NOT NULL PRIMARY KEY,
	value LONGBLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.GetContext(ctx, &value, "SELECT value FROM "+s.table+" WHERE name = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("select %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (s *MySQLStore) Put(ctx context.Context, key string, value []byte) error {
	return s.PutAll(ctx, map[string][]byte{key: value})
}

// PutAll upserts every key in a single transaction using a multi-row INSERT.
func (s *MySQLStore) PutAll(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		if err := validateKey(key); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		query := database.BuildMultiRowInsert(s.table, []string{"name", "value"}, len(keys)) +
			" ON DUPLICATE KEY UPDATE value = VALUES(value)"

		args := make([]interface{}, 0, len(keys)*2)
		for _, key := range keys {
			args = append(args, key, values[key])
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %d keys: %w", len(keys), err)
		}
		return nil
	})
}
