// Package sqlite implementa los puertos de persistencia sobre SQLite (sqlx + go-sqlite3).
// Sirve para instalaciones de un solo nodo y como almacenamiento real en los tests.
package sqlite

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Open abre (o crea) la base en path y aplica el esquema.
// Las transacciones se abren con BEGIN IMMEDIATE: la escritura queda reservada desde el inicio,
// así dos movimientos concurrentes no pueden leer la misma cantidad de partida.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	q := url.Values{}
	q.Set("_txlock", "immediate")
	q.Set("_busy_timeout", "5000")
	q.Set("_journal_mode", "WAL")
	q.Set("_foreign_keys", "on")
	dsn := fmt.Sprintf("file:%s?%s", path, q.Encode())

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(8)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return db, nil
}
