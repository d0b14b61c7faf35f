package store

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS instances (
    dataset_id TEXT NOT NULL,
    pos INTEGER NOT NULL,
    label TEXT NOT NULL,
    features BLOB NOT NULL,
    PRIMARY KEY(dataset_id, pos)
);

CREATE TABLE IF NOT EXISTS models (
    name TEXT PRIMARY KEY,
    payload BLOB NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates the instances and models tables in the provided
// database if they do not already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
