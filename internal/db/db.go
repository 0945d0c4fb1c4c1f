package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskflow/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// EnsureSchema crea las tablas si no existen. Idempotente; se ejecuta al arrancar.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS users (
			id            uuid PRIMARY KEY,
			email         text NOT NULL UNIQUE,
			display_name  text NOT NULL DEFAULT '',
			password_hash text NOT NULL,
			created_at    timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id          bigserial PRIMARY KEY,
			user_id     uuid NOT NULL REFERENCES users (id),
			title       text NOT NULL CHECK (length(title) > 0),
			description text NOT NULL DEFAULT '',
			completed   boolean NOT NULL DEFAULT false,
			created_at  timestamptz NOT NULL,
			updated_at  timestamptz NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks (user_id, created_at DESC);
	`
	_, err := pool.Exec(ctx, schema)
	return err
}
