package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested capture does not exist.
var ErrNotFound = errors.New("not found")

// Capture is one saved selfie.
type Capture struct {
	ID       string
	TakenAt  time.Time
	Filename string
	Username string
	Path     string
}

// CaptureRepository provides access to the captures table.
type CaptureRepository struct {
	db *sql.DB
}

// Captures returns the capture repository for this store.
func (s *Store) Captures() *CaptureRepository {
	return &CaptureRepository{db: s.db}
}

// Create inserts a capture. TakenAt is stored in UTC.
func (r *CaptureRepository) Create(c *Capture) error {
	c.TakenAt = c.TakenAt.UTC()

	_, err := r.db.Exec(
		`INSERT INTO captures (id, taken_at, filename, username, path)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.TakenAt, c.Filename, c.Username, c.Path,
	)
	return err
}

// GetByID retrieves a capture by its ID.
func (r *CaptureRepository) GetByID(id string) (*Capture, error) {
	c := &Capture{}
	err := r.db.QueryRow(
		`SELECT id, taken_at, filename, username, path
		 FROM captures WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.TakenAt, &c.Filename, &c.Username, &c.Path)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns the most recent captures, newest first. A non-positive limit
// returns all of them.
func (r *CaptureRepository) List(limit int) ([]*Capture, error) {
	if limit <= 0 {
		limit = -1
	}
	return r.query(
		`SELECT id, taken_at, filename, username, path
		 FROM captures ORDER BY taken_at DESC LIMIT ?`,
		limit,
	)
}

// ListByUsername returns the captures taken by one operator, newest first.
func (r *CaptureRepository) ListByUsername(username string) ([]*Capture, error) {
	return r.query(
		`SELECT id, taken_at, filename, username, path
		 FROM captures WHERE username = ? ORDER BY taken_at DESC`,
		username,
	)
}

// Count returns the number of recorded captures.
func (r *CaptureRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM captures`).Scan(&n)
	return n, err
}

// Delete removes a capture record by its ID. The image file is left alone.
func (r *CaptureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM captures WHERE id = ?`, id)
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

func (r *CaptureRepository) query(q string, args ...any) ([]*Capture, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*Capture
	for rows.Next() {
		c := &Capture{}
		if err := rows.Scan(&c.ID, &c.TakenAt, &c.Filename, &c.Username, &c.Path); err != nil {
			return nil, err
		}
		captures = append(captures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return captures, nil
}
