package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"BLOG_BACK-END/internal/config"
	"BLOG_BACK-END/internal/logger"
)

// NewConnectPostgres opens a pgx connection pool using the application
// configuration and verifies connectivity with a ping.
func NewConnectPostgres(ctx context.Context, cfg *config.Config, log *logger.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Err(err).Msg("failed to parse database DSN")
		return nil, err
	}

	// Simple protocol keeps the pool usable behind PgBouncer.
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "blog-backend"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Err(err).Msg("failed to create connection pool")
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Err(err).Msg("database ping failed")
		pool.Close()
		return nil, err
	}

	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("connected to database")
	return pool, nil
}
