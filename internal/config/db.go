package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ConnectDB establishes a connection pool to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var pool *pgxpool.Pool
	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				log.Info().Msg("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		if i == maxRetries-1 {
			log.Warn().Err(err).
				Int("attempt", i+1).
				Int("max_attempts", maxRetries).
				Msg("failed to connect to database")
			break
		}
		log.Warn().Err(err).
			Int("attempt", i+1).
			Int("max_attempts", maxRetries).
			Dur("retry_in", cfg.RetryInterval).
			Msg("failed to connect to database")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		name VARCHAR(255),
		phone VARCHAR(50),
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS results (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id),
		pet_name VARCHAR(255) NOT NULL,
		pet_age VARCHAR(50) NOT NULL DEFAULT '',
		pet_weight VARCHAR(50) NOT NULL DEFAULT '',
		pet_symptoms TEXT NOT NULL DEFAULT '',
		answers TEXT NOT NULL, -- JSON array
		constitution VARCHAR(100) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS consultations (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id),
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL,
		preferred_date VARCHAR(10) NOT NULL, -- YYYY-MM-DD
		content TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	-- Older deployments were created without these columns.
	ALTER TABLE users ADD COLUMN IF NOT EXISTS phone VARCHAR(50);
	ALTER TABLE users ADD COLUMN IF NOT EXISTS updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP;
	ALTER TABLE consultations ADD COLUMN IF NOT EXISTS user_id INTEGER REFERENCES users(id);
	ALTER TABLE consultations ADD COLUMN IF NOT EXISTS updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP;

	CREATE INDEX IF NOT EXISTS idx_results_user_id ON results(user_id);
	CREATE INDEX IF NOT EXISTS idx_consultations_user_id ON consultations(user_id);

    CREATE OR REPLACE FUNCTION update_updated_at_column()
    RETURNS TRIGGER AS $$
    BEGIN
       NEW.updated_at = NOW();
       RETURN NEW;
    END;
    $$ language 'plpgsql';

    DO $$
    BEGIN
        IF NOT EXISTS (
            SELECT 1
            FROM pg_trigger
            WHERE tgname = 'set_users_updated_at' AND tgrelid = 'users'::regclass
        ) THEN
            CREATE TRIGGER set_users_updated_at
            BEFORE UPDATE ON users
            FOR EACH ROW
            EXECUTE FUNCTION update_updated_at_column();
        END IF;
    END
    $$;
`

// AutoMigrate creates tables if they don't exist and upgrades older layouts.
func AutoMigrate(ctx context.Context, db *pgxpool.Pool, log zerolog.Logger) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	log.Info().Msg("schema migration applied")
	return nil
}
