package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scythe504/imposter-backend/internal"
	"github.com/sirupsen/logrus"
)

var ErrUnexpectedDatabase = errors.New("unexpected database error")

const (
	createWordsTableSQL = `CREATE TABLE IF NOT EXISTS words (
	id         SERIAL PRIMARY KEY,
	word       TEXT NOT NULL,
	category   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (category, word)
)`
	insertWordSQL = `INSERT INTO words (word, category) VALUES ($1, $2) ON CONFLICT (category, word) DO NOTHING`
	selectWordSQL = `SELECT word, category FROM words ORDER BY category, word`
)

// Postgres stores the default word catalog. Rooms never touch the database;
// it is read once at startup.
type Postgres struct {
	pool *pgxpool.Pool
	log  *logrus.Entry
}

func NewPostgres(ctx context.Context, connString string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{
		pool: pool,
		log:  logrus.WithField("component", "postgres"),
	}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, createWordsTableSQL); err != nil {
		return wrap(err)
	}
	return nil
}

// SeedWords inserts entries, skipping ones already stored, and returns how
// many rows were new.
func (p *Postgres) SeedWords(ctx context.Context, entries []internal.WordEntry) (int, error) {
	batch := &pgx.Batch{}
	for _, e := range entries {
		word, category := strings.TrimSpace(e.Word), strings.TrimSpace(e.Category)
		if word == "" || category == "" {
			continue
		}
		batch.Queue(insertWordSQL, word, category)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	results := p.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			return inserted, wrap(err)
		}
		inserted += int(tag.RowsAffected())
	}
	p.log.Infof("[SeedWords] inserted %d of %d words", inserted, batch.Len())
	return inserted, nil
}

// LoadWords returns the stored catalog. It satisfies words.Source.
func (p *Postgres) LoadWords(ctx context.Context) ([]internal.WordEntry, error) {
	rows, err := p.pool.Query(ctx, selectWordSQL)
	if err != nil {
		return nil, wrap(err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (internal.WordEntry, error) {
		var e internal.WordEntry
		err := row.Scan(&e.Word, &e.Category)
		return e, err
	})
	if err != nil {
		return nil, wrap(err)
	}
	p.log.Debugf("[LoadWords] loaded %d words", len(entries))
	return entries, nil
}

func wrap(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnexpectedDatabase, err)
}
