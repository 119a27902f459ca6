package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime stays off: reservation dates are CHAR(10) strings and
	// must arrive in the core exactly as stored.
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the three tables when they do not exist yet, so
// a fresh database works without a migration step.  Dates are CHAR(10)
// on purpose: the ledger compares them lexicographically and the
// persistence layer must not reinterpret them.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			id       BIGINT UNSIGNED NOT NULL PRIMARY KEY,
			number   INT UNSIGNED    NOT NULL UNIQUE,
			capacity INT UNSIGNED    NOT NULL,
			occupied TINYINT(1)      NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS guests (
			id       BIGINT UNSIGNED NOT NULL PRIMARY KEY,
			name     VARCHAR(255)    NOT NULL,
			document VARCHAR(64)     NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id         BIGINT UNSIGNED NOT NULL PRIMARY KEY,
			room_id    BIGINT UNSIGNED NOT NULL,
			guest_id   BIGINT UNSIGNED NOT NULL,
			party_size INT UNSIGNED    NOT NULL,
			start_date CHAR(10)        NOT NULL,
			end_date   CHAR(10)        NOT NULL,
			active     TINYINT(1)      NOT NULL DEFAULT 1
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
