package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// BoardRecord represents a stored board registration row.
type BoardRecord struct {
	ID             string
	FormFactor     string
	ComponentCount int
	KindCount      int
	RegisteredAt   time.Time
	BoardJSON      string
}

// ListFilter holds optional query parameters for listing registrations.
type ListFilter struct {
	FormFactor string
	PageSize   int
	Page       int
}

// Store provides CRUD operations for board registrations.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Insert stores a board registration.
func (s *Store) Insert(ctx context.Context, rec *BoardRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO boards (id, form_factor, component_count, kind_count, registered_at, board_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.FormFactor,
		rec.ComponentCount,
		rec.KindCount,
		rec.RegisteredAt.UTC().Format(time.RFC3339),
		rec.BoardJSON,
	)
	if err != nil {
		return fmt.Errorf("insert board: %w", err)
	}
	return nil
}

// Get retrieves a board registration by ID.
func (s *Store) Get(ctx context.Context, id string) (*BoardRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, form_factor, component_count, kind_count, registered_at, board_json
		 FROM boards WHERE id = ?`, id)

	return scanRecord(row)
}

// Delete removes a board registration by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// List returns board registration summaries matching the given filter.
// The board_json column is omitted from summaries.
func (s *Store) List(ctx context.Context, f ListFilter) ([]BoardRecord, int, error) {
	where := ""
	var args []any
	if f.FormFactor != "" {
		where = " WHERE form_factor = ?"
		args = append(args, f.FormFactor)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM boards" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count boards: %w", err)
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := `SELECT id, form_factor, component_count, kind_count, registered_at, ''
		FROM boards` + where + ` ORDER BY registered_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, pageSize, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var records []BoardRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}

	return records, total, rows.Err()
}

// CountByFormFactor returns the number of registrations per form factor.
func (s *Store) CountByFormFactor(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT form_factor, COUNT(*) FROM boards GROUP BY form_factor`)
	if err != nil {
		return nil, fmt.Errorf("count by form factor: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var ff string
		var n int
		if err := rows.Scan(&ff, &n); err != nil {
			return nil, err
		}
		counts[ff] = n
	}
	return counts, rows.Err()
}

// Purge deletes board registrations older than the given duration.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE registered_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge boards: %w", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*BoardRecord, error) {
	var rec BoardRecord
	var registeredAt string
	err := row.Scan(&rec.ID, &rec.FormFactor, &rec.ComponentCount, &rec.KindCount, &registeredAt, &rec.BoardJSON)
	if err != nil {
		return nil, err
	}

	rec.RegisteredAt, _ = time.Parse(time.RFC3339, registeredAt)

	return &rec, nil
}
