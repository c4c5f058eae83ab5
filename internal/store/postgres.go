package store

import (
	"context"
	"encoding/json"

	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"padlink/internal/app"
)

type Postgres struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgres connects to postgres and returns a pool wrapper
func NewPostgres(ctx context.Context, cfg app.Config, log *slog.Logger) (*Postgres, error) {
	pc, err := pgxpool.ParseConfig(cfg.PGURL)
	if err != nil {
		return nil, err
	}
	pc.MaxConns = int32(cfg.PGMaxConn)

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool, log: log}, nil
}

func (p *Postgres) Close() { p.pool.Close() }

// SaveGeneration records one generation proxy result
func (p *Postgres) SaveGeneration(ctx context.Context, title string, data json.RawMessage) (Generation, error) {
	row := p.pool.QueryRow(ctx, `
		INSERT INTO generations (title, data)
		VALUES ($1, $2)
		RETURNING id, title, data, created_at
	`, title, data)

	var g Generation
	if err := row.Scan(&g.ID, &g.Title, &g.Data, &g.CreatedAt); err != nil {
		return Generation{}, err
	}
	p.log.Info("generation.saved", "id", g.ID, "title", g.Title)
	return g, nil
}

// ListGenerations returns recent generations, newest first
func (p *Postgres) ListGenerations(ctx context.Context, limit, offset int) ([]Generation, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, title, data, created_at
		FROM generations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.Title, &g.Data, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
