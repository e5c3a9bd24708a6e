package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Inspection is one recorded rendering.
type Inspection struct {
	ID         string
	Seq        int64
	Command    string
	TypeString string
	Output     string
	CreatedAt  time.Time
}

// NotFoundError reports a lookup for an id the log does not hold.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("inspection %s not found", e.ID)
}

// newID generates a time-ordered unique identifier (UUIDv7), so the id
// ordering roughly follows the seq ordering.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Record appends one inspection to the log and returns the stored row.
func (s *Store) Record(ctx context.Context, command, typeString, output string) (Inspection, error) {
	id := newID()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inspections (id, command, type_string, output)
		VALUES (?, ?, ?, ?)
	`, id, command, typeString, output)
	if err != nil {
		return Inspection{}, fmt.Errorf("record inspection: %w", err)
	}
	return s.Get(ctx, id)
}

// Get fetches one inspection by id.
func (s *Store) Get(ctx context.Context, id string) (Inspection, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, id, command, type_string, output, created_at
		FROM inspections WHERE id = ?
	`, id)
	insp, err := scanInspection(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Inspection{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return Inspection{}, fmt.Errorf("get inspection: %w", err)
	}
	return insp, nil
}

// List returns inspections in seq order, oldest first. limit <= 0 means
// no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Inspection, error) {
	query := `
		SELECT seq, id, command, type_string, output, created_at
		FROM inspections ORDER BY seq ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	defer rows.Close()

	var out []Inspection
	for rows.Next() {
		insp, err := scanInspection(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list inspections: %w", err)
		}
		out = append(out, insp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	return out, nil
}

func scanInspection(scan func(...any) error) (Inspection, error) {
	var insp Inspection
	var created string
	if err := scan(&insp.Seq, &insp.ID, &insp.Command, &insp.TypeString, &insp.Output, &created); err != nil {
		return Inspection{}, err
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999Z", created); err == nil {
		insp.CreatedAt = t
	}
	return insp, nil
}
