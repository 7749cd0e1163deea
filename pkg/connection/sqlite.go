package connection

import (
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func NewSQLite(dsn string) (*sqlx.DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dsn)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Connect("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}
