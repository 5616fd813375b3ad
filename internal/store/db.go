// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package store keeps a local snapshot of the CRM records in a sqlite
// database under the XDG state dir. The snapshot is replaced wholesale on
// every sync; it exists so `kavio stats --offline` can render the dashboard
// without the backend.
package store

import (
	"database/sql"
	"time"

	"kavio/cli/internal/model"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS opportunities (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			value REAL NOT NULL,
			opened_at TEXT NOT NULL DEFAULT '',
			closed_at TEXT NOT NULL DEFAULT '',
			client_id INTEGER,
			client_name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS sync_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// ReplaceSnapshot swaps the stored records for the given ones atomically and
// stamps the sync time.
func (db *DB) ReplaceSnapshot(clients []model.Client, opps []model.Opportunity, takenAt time.Time) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM clients`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM opportunities`); err != nil {
		return err
	}

	for _, c := range clients {
		if _, err := tx.Exec(
			`INSERT INTO clients (id, name, email, phone) VALUES (?, ?, ?, ?)`,
			c.ID, c.Name, c.Email, c.Phone,
		); err != nil {
			return err
		}
	}

	for _, o := range opps {
		var clientID sql.NullInt64
		var clientName string
		if o.Client != nil {
			clientID = sql.NullInt64{Int64: o.Client.ID, Valid: true}
			clientName = o.Client.Name
		}
		if _, err := tx.Exec(
			`INSERT INTO opportunities (id, title, status, value, opened_at, closed_at, client_id, client_name)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.Title, o.Status, o.Value, o.OpenedAt, o.ClosedAt, clientID, clientName,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO sync_meta (key, value) VALUES ('synced_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		takenAt.UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// Clients returns the snapshotted client records ordered by name.
func (db *DB) Clients() ([]model.Client, error) {
	rows, err := db.conn.Query(`SELECT id, name, email, phone FROM clients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Opportunities returns the snapshotted opportunities with their client
// back-reference reconstructed, ordered by id.
func (db *DB) Opportunities() ([]model.Opportunity, error) {
	rows, err := db.conn.Query(
		`SELECT id, title, status, value, opened_at, closed_at, client_id, client_name
		 FROM opportunities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Opportunity
	for rows.Next() {
		var o model.Opportunity
		var clientID sql.NullInt64
		var clientName string
		if err := rows.Scan(&o.ID, &o.Title, &o.Status, &o.Value, &o.OpenedAt, &o.ClosedAt, &clientID, &clientName); err != nil {
			return nil, err
		}
		if clientID.Valid || clientName != "" {
			o.Client = &model.Client{ID: clientID.Int64, Name: clientName}
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// SyncedAt returns when the snapshot was last replaced, or false when no
// sync has happened yet.
func (db *DB) SyncedAt() (time.Time, bool, error) {
	var raw string
	err := db.conn.QueryRow(`SELECT value FROM sync_meta WHERE key = 'synced_at'`).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
