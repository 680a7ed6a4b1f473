package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/roach88/steam/internal/tables"
)

// ErrDatasetNotFound is returned when a dataset id is unknown.
var ErrDatasetNotFound = errors.New("dataset not found")

// Dataset describes one imported pair of tables.
type Dataset struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ContentHash     string `json:"content_hash"`
	SaturationRows  int    `json:"saturation_rows"`
	SuperheatedRows int    `json:"superheated_rows"`
	Seq             int64  `json:"seq"`
}

// ImportTables writes t as a new dataset in one transaction.
func (s *Store) ImportTables(ctx context.Context, name string, t *tables.Tables) (Dataset, error) {
	if t == nil {
		return Dataset{}, fmt.Errorf("import tables: nil tables")
	}
	sat, super := t.Saturation(), t.Superheated()
	ds := Dataset{
		ID:              s.ids.Generate(),
		Name:            name,
		ContentHash:     ContentHash(t),
		SaturationRows:  len(sat),
		SuperheatedRows: len(super),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Dataset{}, fmt.Errorf("import tables: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO datasets (id, name, content_hash)
		VALUES (?, ?, ?)
	`, ds.ID, ds.Name, ds.ContentHash)
	if err != nil {
		return Dataset{}, fmt.Errorf("import tables: insert dataset: %w", err)
	}
	if ds.Seq, err = result.LastInsertId(); err != nil {
		return Dataset{}, fmt.Errorf("import tables: last insert id: %w", err)
	}

	satStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO saturation_samples (dataset_id, row, t, p, hf, hg, sf, sg, vf, vg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Dataset{}, fmt.Errorf("import tables: prepare saturation: %w", err)
	}
	defer satStmt.Close()
	for i, r := range sat {
		if _, err := satStmt.ExecContext(ctx, ds.ID, i, r.T, r.P, r.Hf, r.Hg, r.Sf, r.Sg, r.Vf, r.Vg); err != nil {
			return Dataset{}, fmt.Errorf("import tables: saturation row %d: %w", i, err)
		}
	}

	superStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO superheated_samples (dataset_id, row, t, p, h, s)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Dataset{}, fmt.Errorf("import tables: prepare superheated: %w", err)
	}
	defer superStmt.Close()
	for i, r := range super {
		if _, err := superStmt.ExecContext(ctx, ds.ID, i, r.T, r.P, r.H, r.S); err != nil {
			return Dataset{}, fmt.Errorf("import tables: superheated row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Dataset{}, fmt.Errorf("import tables: commit: %w", err)
	}
	return ds, nil
}

// ListDatasets returns every dataset in import order.
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListDatasets(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx, datasetQuery+`
		ORDER BY d.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	datasets := []Dataset{}
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate datasets: %w", err)
	}
	return datasets, nil
}

// GetDataset returns one dataset by id or name. When several datasets
// share a name the most recent wins.
func (s *Store) GetDataset(ctx context.Context, ref string) (Dataset, error) {
	row := s.db.QueryRowContext(ctx, datasetQuery+`
		WHERE d.id = ? OR d.name = ?
		ORDER BY (d.id = ?) DESC, d.seq DESC
		LIMIT 1
	`, ref, ref, ref)
	ds, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Dataset{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, ref)
	}
	return ds, err
}

// LoadTables reads a dataset back and validates it.
func (s *Store) LoadTables(ctx context.Context, ref string) (*tables.Tables, error) {
	ds, err := s.GetDataset(ctx, ref)
	if err != nil {
		return nil, err
	}

	sat, err := s.readSaturation(ctx, ds.ID)
	if err != nil {
		return nil, err
	}
	super, err := s.readSuperheated(ctx, ds.ID)
	if err != nil {
		return nil, err
	}

	t, err := tables.New(sat, super)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", ds.ID, err)
	}
	return t, nil
}

// DeleteDataset removes a dataset and its samples.
func (s *Store) DeleteDataset(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete dataset: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, id)
	}
	return nil
}

const datasetQuery = `
	SELECT d.id, d.name, d.content_hash, d.seq,
		(SELECT COUNT(*) FROM saturation_samples WHERE dataset_id = d.id),
		(SELECT COUNT(*) FROM superheated_samples WHERE dataset_id = d.id)
	FROM datasets d
`

type scanner interface {
	Scan(dest ...any) error
}

func scanDataset(row scanner) (Dataset, error) {
	var ds Dataset
	err := row.Scan(&ds.ID, &ds.Name, &ds.ContentHash, &ds.Seq, &ds.SaturationRows, &ds.SuperheatedRows)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Dataset{}, err
		}
		return Dataset{}, fmt.Errorf("scan dataset: %w", err)
	}
	return ds, nil
}

func (s *Store) readSaturation(ctx context.Context, id string) ([]tables.SatSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t, p, hf, hg, sf, sg, vf, vg
		FROM saturation_samples
		WHERE dataset_id = ?
		ORDER BY row ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query saturation samples: %w", err)
	}
	defer rows.Close()

	var out []tables.SatSample
	for rows.Next() {
		var r tables.SatSample
		if err := rows.Scan(&r.T, &r.P, &r.Hf, &r.Hg, &r.Sf, &r.Sg, &r.Vf, &r.Vg); err != nil {
			return nil, fmt.Errorf("scan saturation sample: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saturation samples: %w", err)
	}
	return out, nil
}

func (s *Store) readSuperheated(ctx context.Context, id string) ([]tables.SuperSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t, p, h, s
		FROM superheated_samples
		WHERE dataset_id = ?
		ORDER BY row ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query superheated samples: %w", err)
	}
	defer rows.Close()

	var out []tables.SuperSample
	for rows.Next() {
		var r tables.SuperSample
		if err := rows.Scan(&r.T, &r.P, &r.H, &r.S); err != nil {
			return nil, fmt.Errorf("scan superheated sample: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate superheated samples: %w", err)
	}
	return out, nil
}

// ContentHash returns a hex SHA-256 over the tabulated values of t, so
// identical tables imported twice carry the same hash.
func ContentHash(t *tables.Tables) string {
	h := sha256.New()
	var buf [8]byte
	put := func(vs ...float64) {
		for _, v := range vs {
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	h.Write([]byte("saturation\x00"))
	for _, r := range t.Saturation() {
		put(r.T, r.P, r.Hf, r.Hg, r.Sf, r.Sg, r.Vf, r.Vg)
	}
	h.Write([]byte("superheated\x00"))
	for _, r := range t.Superheated() {
		put(r.T, r.P, r.H, r.S)
	}
	return hex.EncodeToString(h.Sum(nil))
}
