package recordstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	container TEXT NOT NULL,
	account TEXT NOT NULL,
	id TEXT NOT NULL,
	body TEXT NOT NULL,
	PRIMARY KEY (container, account, id)
);`

// SQLite stores records in a single-file database. It suits the bulk
// validator CLI, where the dataset lives alongside the input files.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed initialises) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, container Container, account string, id uuid.UUID) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM records WHERE container = ? AND account = ? AND id = ?`,
		string(container), account, id.String()).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound(container)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return body, nil
}

func (s *SQLite) Save(ctx context.Context, container Container, account string, id uuid.UUID, body []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (container, account, id, body) VALUES (?, ?, ?, ?)
		 ON CONFLICT (container, account, id) DO UPDATE SET body = excluded.body`,
		string(container), account, id.String(), body)
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, container Container, account string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE container = ? AND account = ? AND id = ?`,
		string(container), account, id.String())
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound(container)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context, container Container, account string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM records WHERE container = ? AND account = ? ORDER BY id`,
		string(container), account)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, body)
	}
	return out, rows.Err()
}

func (s *SQLite) Count(ctx context.Context, container Container, account string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE container = ? AND account = ?`,
		string(container), account).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (s *SQLite) SaveMany(ctx context.Context, container Container, account string, records map[uuid.UUID][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (container, account, id, body) VALUES (?, ?, ?, ?)
		 ON CONFLICT (container, account, id) DO UPDATE SET body = excluded.body`)
	if err != nil {
		return fmt.Errorf("prepare bulk save: %w", err)
	}
	defer stmt.Close()

	for id, body := range records {
		if _, err := stmt.ExecContext(ctx, string(container), account, id.String(), body); err != nil {
			return fmt.Errorf("bulk save record %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error { return s.db.Close() }
