package recordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS records (
	container TEXT NOT NULL,
	account TEXT NOT NULL,
	id UUID NOT NULL,
	body JSONB NOT NULL,
	PRIMARY KEY (container, account, id)
);`

// Postgres stores records as JSONB rows behind a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects with the given URL and ensures the schema exists.
func OpenPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init postgres schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Get(ctx context.Context, container Container, account string, id uuid.UUID) ([]byte, error) {
	var body []byte
	err := p.pool.QueryRow(ctx,
		`SELECT body FROM records WHERE container = $1 AND account = $2 AND id = $3`,
		string(container), account, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound(container)
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return body, nil
}

func (p *Postgres) Save(ctx context.Context, container Container, account string, id uuid.UUID, body []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO records (container, account, id, body) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (container, account, id) DO UPDATE SET body = EXCLUDED.body`,
		string(container), account, id, body)
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, container Container, account string, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM records WHERE container = $1 AND account = $2 AND id = $3`,
		string(container), account, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound(container)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context, container Container, account string) ([][]byte, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT body FROM records WHERE container = $1 AND account = $2 ORDER BY id`,
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

func (p *Postgres) Count(ctx context.Context, container Container, account string) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM records WHERE container = $1 AND account = $2`,
		string(container), account).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (p *Postgres) SaveMany(ctx context.Context, container Container, account string, records map[uuid.UUID][]byte) error {
	batch := &pgx.Batch{}
	for id, body := range records {
		batch.Queue(
			`INSERT INTO records (container, account, id, body) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (container, account, id) DO UPDATE SET body = EXCLUDED.body`,
			string(container), account, id, body)
	}
	results := p.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("bulk save record: %w", err)
		}
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
