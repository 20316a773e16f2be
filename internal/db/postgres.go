package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	usersSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50) NOT NULL DEFAULT '',
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'client',
			client_type VARCHAR(20) NULL,
			onboarding_draft_id UUID NULL,
			iban VARCHAR(34) NULL,
			is_founder BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, usersSQL); err != nil {
		return err
	}

	// -------------------------------
	// REGIONS
	// -------------------------------
	regionsSQL := `
		CREATE TABLE IF NOT EXISTS regions (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			description TEXT NULL,
			available_lunch BOOLEAN NOT NULL DEFAULT TRUE,
			available_dinner BOOLEAN NOT NULL DEFAULT TRUE
		)
	`
	if _, err := db.Exec(ctx, regionsSQL); err != nil {
		return err
	}

	// -------------------------------
	// ADDRESSES
	// -------------------------------
	addressesSQL := `
		CREATE TABLE IF NOT EXISTS addresses (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL,
			label VARCHAR(100) NOT NULL,
			line1 VARCHAR(255) NOT NULL,
			line2 VARCHAR(255) NULL,
			city VARCHAR(100) NOT NULL,
			postal_code VARCHAR(20) NOT NULL,
			region_id INTEGER NULL REFERENCES regions(id),
			notes TEXT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE
		)
	`
	if _, err := db.Exec(ctx, addressesSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU ROTATION (14 days)
	// -------------------------------
	menuDaysSQL := `
		CREATE TABLE IF NOT EXISTS menu_days (
			id SERIAL PRIMARY KEY,
			day_number INTEGER UNIQUE NOT NULL CHECK (day_number BETWEEN 1 AND 14),
			dish_a VARCHAR(255) NOT NULL,
			dish_b VARCHAR(255) NOT NULL,
			calories_a INTEGER NULL,
			calories_b INTEGER NULL
		)
	`
	if _, err := db.Exec(ctx, menuDaysSQL); err != nil {
		return err
	}

	// -------------------------------
	// BOOKINGS
	// -------------------------------
	bookingsSQL := `
		CREATE TABLE IF NOT EXISTS bookings (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL,
			address_id INTEGER NOT NULL REFERENCES addresses(id),
			delivery_date DATE NOT NULL,
			time_block VARCHAR(20) NOT NULL,
			meals INTEGER NOT NULL,
			dish_choice VARCHAR(10) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_bookings_user_date
			ON bookings (user_id, delivery_date);
		CREATE INDEX IF NOT EXISTS idx_bookings_date
			ON bookings (delivery_date);
	`
	if _, err := db.Exec(ctx, bookingsSQL); err != nil {
		return err
	}

	// -------------------------------
	// ONBOARDING
	// -------------------------------
	onboardingSQL := `
		CREATE TABLE IF NOT EXISTS onboarding_drafts (
			id UUID PRIMARY KEY,
			week_start DATE NOT NULL,
			client_type VARCHAR(20) NULL,
			iban VARCHAR(34) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS onboarding_behavior_cells (
			id SERIAL PRIMARY KEY,
			draft_id UUID NOT NULL REFERENCES onboarding_drafts(id) ON DELETE CASCADE,
			weekday_index INTEGER NOT NULL CHECK (weekday_index BETWEEN 0 AND 6),
			slot INTEGER NOT NULL CHECK (slot IN (1, 2)),
			pref VARCHAR(10) NOT NULL,
			UNIQUE (draft_id, weekday_index, slot)
		);

		CREATE TABLE IF NOT EXISTS onboarding_first_week_selections (
			id SERIAL PRIMARY KEY,
			draft_id UUID NOT NULL REFERENCES onboarding_drafts(id) ON DELETE CASCADE,
			weekday_index INTEGER NOT NULL CHECK (weekday_index BETWEEN 0 AND 6),
			delivery_date DATE NOT NULL,
			meals INTEGER NOT NULL,
			dish_choice VARCHAR(10) NULL,
			time_block VARCHAR(20) NULL,
			address_id INTEGER NULL,
			UNIQUE (draft_id, weekday_index)
		);
	`
	if _, err := db.Exec(ctx, onboardingSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
