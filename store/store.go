// Package store persists training datasets and constructed models in
// SQLite. Feature vectors are stored as float32 BLOBs; models are stored
// as their binary serialization, so a loaded model answers queries
// identically to the original.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/frnn/classifier"
	"github.com/viant/frnn/dataset"
)

// Store is a SQLite-backed dataset and model store.
type Store struct {
	db *sql.DB
}

// New creates a Store on the provided database, ensuring its schema.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveDataset stores the dataset under the given id, replacing any prior
// content for that id. Instance order is preserved through the pos column.
func (s *Store) SaveDataset(ctx context.Context, id string, ds dataset.Dataset) error {
	if id == "" {
		return fmt.Errorf("store: SaveDataset called with empty id")
	}
	if err := ds.Validate(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM instances WHERE dataset_id = ?`, id); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO instances(dataset_id, pos, label, features) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, vec := range ds.Vectors {
		if _, err := stmt.ExecContext(ctx, id, pos, ds.Labels[pos], dataset.EncodeVector(vec)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadDataset reads back a dataset saved with SaveDataset, in its original
// instance order. An unknown id returns sql.ErrNoRows.
func (s *Store) LoadDataset(ctx context.Context, id string) (dataset.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label, features FROM instances WHERE dataset_id = ? ORDER BY pos`, id)
	if err != nil {
		return dataset.Dataset{}, err
	}
	defer rows.Close()

	var ds dataset.Dataset
	for rows.Next() {
		var label string
		var blob []byte
		if err := rows.Scan(&label, &blob); err != nil {
			return dataset.Dataset{}, err
		}
		vec, err := dataset.DecodeVector(blob)
		if err != nil {
			return dataset.Dataset{}, err
		}
		ds.Vectors = append(ds.Vectors, vec)
		ds.Labels = append(ds.Labels, label)
	}
	if err := rows.Err(); err != nil {
		return dataset.Dataset{}, err
	}
	if ds.Len() == 0 {
		return dataset.Dataset{}, sql.ErrNoRows
	}
	return ds, nil
}

// SaveModel stores a constructed model under the given name, replacing any
// prior model with that name.
func (s *Store) SaveModel(ctx context.Context, name string, model *classifier.Model) error {
	if name == "" {
		return fmt.Errorf("store: SaveModel called with empty name")
	}
	payload, err := model.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO models(name, payload) VALUES(?, ?)
ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`, name, payload)
	return err
}

// LoadModel reconstructs a model saved with SaveModel. An unknown name
// returns sql.ErrNoRows.
func (s *Store) LoadModel(ctx context.Context, name string) (*classifier.Model, error) {
	var payload []byte
	if err := s.db.QueryRowContext(ctx, `SELECT payload FROM models WHERE name = ?`, name).Scan(&payload); err != nil {
		return nil, err
	}
	return classifier.UnmarshalModel(payload)
}
