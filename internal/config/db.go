package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables.
// DATABASE_URL wins over the individual DB_* variables.
func LoadDBConfig() (*DBConfig, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return &DBConfig{DSN: url}, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error
	logger := zerolog.Ctx(ctx)

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				logger.Info().Msg("Successfully connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn().Err(err).Int("attempt", i+1).Int("max_attempts", maxRetries).
			Dur("retry_in", retryInterval).Msg("Failed to connect to database")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Schema is the PostgreSQL schema. Ids are 24-hex ObjectIDs so that records
// look the same whichever backend stores them.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id CHAR(24) PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('customer', 'admin')) DEFAULT 'customer',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS listings (
		id CHAR(24) PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		image TEXT NOT NULL,
		state TEXT NOT NULL,
		district TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL CHECK (price > 0),
		contact TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS packages (
		id CHAR(24) PRIMARY KEY,
		name TEXT NOT NULL,
		image TEXT NOT NULL,
		description TEXT NOT NULL,
		days INTEGER NOT NULL CHECK (days > 0),
		places_count INTEGER NOT NULL CHECK (places_count > 0),
		places TEXT[] NOT NULL,
		cost DOUBLE PRECISION NOT NULL CHECK (cost > 0),
		phone TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS orders (
		id CHAR(24) PRIMARY KEY,
		user_id CHAR(24) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type TEXT NOT NULL CHECK (type IN ('listing', 'package')),
		listing_id CHAR(24),
		listing_name TEXT,
		package_id CHAR(24),
		package_name TEXT,
		amount DOUBLE PRECISION NOT NULL CHECK (amount > 0),
		status TEXT NOT NULL CHECK (status IN ('Pending', 'Completed', 'Cancelled')) DEFAULT 'Pending',
		check_in_date TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CHECK (
			(type = 'listing' AND listing_id IS NOT NULL AND listing_name IS NOT NULL AND package_id IS NULL AND package_name IS NULL)
			OR
			(type = 'package' AND package_id IS NOT NULL AND package_name IS NOT NULL AND listing_id IS NULL AND listing_name IS NULL AND check_in_date IS NULL)
		)
	);

	CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC);
	`

// Execer is satisfied by *pgxpool.Pool and pgxmock pools.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	zerolog.Ctx(ctx).Info().Msg("AutoMigrate applied successfully")
	return nil
}
