package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// DefaultListLimit caps List when no positive limit is given.
const DefaultListLimit = 20

// Reading is a stored analysis. Payload holds the full result as JSON so
// the schema does not have to track every field of a reading.
type Reading struct {
	ID        string          `json:"id"`
	Age       string          `json:"age"`
	Gender    string          `json:"gender"`
	Focus     string          `json:"focusArea"`
	Shape     string          `json:"palmShape"`
	Source    string          `json:"source"`
	Fallback  string          `json:"fallback,omitempty"`
	Payload   json.RawMessage `json:"result,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ReadingRepository provides CRUD operations for readings.
type ReadingRepository struct {
	db *sql.DB
}

// Readings returns the reading repository for this store.
func (s *Store) Readings() *ReadingRepository {
	return &ReadingRepository{db: s.db}
}

// Create inserts a reading and, when thumbnail is non-empty, its preview.
func (r *ReadingRepository) Create(ctx context.Context, rd *Reading, thumbnail []byte) error {
	if rd.CreatedAt.IsZero() {
		rd.CreatedAt = time.Now()
	}
	if len(rd.Payload) == 0 {
		rd.Payload = json.RawMessage("{}")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO readings (id, age, gender, focus, shape, source, fallback, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rd.ID, rd.Age, rd.Gender, rd.Focus, rd.Shape, rd.Source, rd.Fallback, string(rd.Payload), rd.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}

	if len(thumbnail) > 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reading_thumbnails (reading_id, data) VALUES (?, ?)`,
			rd.ID, thumbnail,
		); err != nil {
			return fmt.Errorf("insert thumbnail: %w", err)
		}
	}

	return tx.Commit()
}

// GetByID retrieves a reading with its payload.
func (r *ReadingRepository) GetByID(ctx context.Context, id string) (*Reading, error) {
	rd := &Reading{}
	var payload string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, age, gender, focus, shape, source, fallback, payload, created_at
		 FROM readings WHERE id = ?`,
		id,
	).Scan(&rd.ID, &rd.Age, &rd.Gender, &rd.Focus, &rd.Shape, &rd.Source, &rd.Fallback, &payload, &rd.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rd.Payload = json.RawMessage(payload)
	return rd, nil
}

// List returns the most recent readings without their payloads.
func (r *ReadingRepository) List(ctx context.Context, limit int) ([]*Reading, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, age, gender, focus, shape, source, fallback, created_at
		 FROM readings ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := make([]*Reading, 0)
	for rows.Next() {
		rd := &Reading{}
		if err := rows.Scan(&rd.ID, &rd.Age, &rd.Gender, &rd.Focus, &rd.Shape, &rd.Source, &rd.Fallback, &rd.CreatedAt); err != nil {
			return nil, err
		}
		readings = append(readings, rd)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return readings, nil
}

// Count returns the number of stored readings.
func (r *ReadingRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM readings`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes a reading and its thumbnail.
func (r *ReadingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM readings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Thumbnail returns the PNG preview stored with a reading.
func (r *ReadingRepository) Thumbnail(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM reading_thumbnails WHERE reading_id = ?`,
		id,
	).Scan(&data)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return data, nil
}
