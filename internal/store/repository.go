package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fh2207/waveview/internal/point"
)

// Repository persists point sets to SQLite. The overlay layer never touches
// it; only the host CLI loads and saves through here.
type Repository struct {
	db *sql.DB
}

// OpenRepository opens (and initializes if needed) the point database at path.
func OpenRepository(path string) (*Repository, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open point database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to point database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS points (
			id TEXT PRIMARY KEY,
			time REAL NOT NULL,
			editable INTEGER NOT NULL DEFAULT 0,
			color TEXT,
			label_text TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS points_time_idx ON points(time)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize point schema: %w", err)
		}
	}
	return nil
}

// Load returns every stored point ordered by time.
func (r *Repository) Load(ctx context.Context) ([]*point.Point, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, time, editable, color, label_text
		FROM points ORDER BY time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	defer rows.Close()

	var out []*point.Point
	for rows.Next() {
		var p point.Point
		var editable int
		var color, label sql.NullString
		if err := rows.Scan(&p.ID, &p.Time, &editable, &color, &label); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		p.Editable = editable != 0
		p.Color = color.String
		p.LabelText = label.String
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	return out, nil
}

// Save inserts or replaces a point.
func (r *Repository) Save(ctx context.Context, p *point.Point) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid point: %w", err)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO points (id, time, editable, color, label_text)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			time = excluded.time,
			editable = excluded.editable,
			color = excluded.color,
			label_text = excluded.label_text
	`,
		p.ID,
		p.Time,
		boolToInt(p.Editable),
		nullableString(p.Color),
		nullableString(p.LabelText),
	)
	if err != nil {
		return fmt.Errorf("failed to save point: %w", err)
	}
	return nil
}

// SaveAll replaces the stored set with the given points in one transaction.
func (r *Repository) SaveAll(ctx context.Context, points []*point.Point) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM points`); err != nil {
		return fmt.Errorf("failed to clear points: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO points (id, time, editable, color, label_text)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid point: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Time, boolToInt(p.Editable),
			nullableString(p.Color), nullableString(p.LabelText),
		); err != nil {
			return fmt.Errorf("failed to insert point %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit points: %w", err)
	}
	return nil
}

// Delete removes a stored point by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM points WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrPointNotFound, id)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
