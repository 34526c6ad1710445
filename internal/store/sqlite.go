package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spinlab/internal/ising"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const defaultPerPage = 50

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db  *sql.DB
	now func() time.Time
}

var _ DB = (*SQLiteDB)(nil)

// NewSQLiteDB opens the database at path. ":memory:" gives a private
// in-memory database.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return &SQLiteDB{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			size INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			beta REAL NOT NULL,
			coupling REAL NOT NULL,
			seed INTEGER NOT NULL,
			stride INTEGER NOT NULL,
			initial_energy REAL NOT NULL,
			final_energy REAL NOT NULL,
			accepted INTEGER NOT NULL,
			acceptance_rate REAL NOT NULL,
			magnetization REAL NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_energy (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			step INTEGER NOT NULL,
			energy REAL NOT NULL,
			PRIMARY KEY (run_id, step)
		)`,
		`CREATE TABLE IF NOT EXISTS sweeps (
			id TEXT PRIMARY KEY,
			size INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			burn_in INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sweep_points (
			sweep_id TEXT NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
			beta REAL NOT NULL,
			magnetization REAL NOT NULL,
			abs_magnetization REAL NOT NULL,
			mean_energy REAL NOT NULL,
			energy_variance REAL NOT NULL,
			specific_heat REAL NOT NULL,
			acceptance_rate REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sweep_points_sweep ON sweep_points(sweep_id, beta)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun stores a run and its thinned energy series in one transaction.
// An empty ID is filled with a fresh UUID.
func (s *SQLiteDB) SaveRun(run *Run, energy []EnergyPoint) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs (
			id, size, steps, beta, coupling, seed, stride,
			initial_energy, final_energy, accepted, acceptance_rate, magnetization, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Size, run.Steps, run.Beta, run.Coupling, run.Seed, run.Stride,
		run.InitialEnergy, run.FinalEnergy, run.Accepted, run.AcceptanceRate, run.Magnetization,
		run.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO run_energy (run_id, step, energy) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare energy insert: %w", err)
	}
	defer stmt.Close()
	for _, p := range energy {
		if _, err := stmt.Exec(run.ID, p.Step, p.Energy); err != nil {
			return fmt.Errorf("failed to save energy at step %d: %w", p.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

const runColumns = `id, size, steps, beta, coupling, seed, stride,
	initial_energy, final_energy, accepted, acceptance_rate, magnetization, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var created int64
	err := row.Scan(
		&run.ID, &run.Size, &run.Steps, &run.Beta, &run.Coupling, &run.Seed, &run.Stride,
		&run.InitialEnergy, &run.FinalEnergy, &run.Accepted, &run.AcceptanceRate, &run.Magnetization,
		&created,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt = time.Unix(0, created).UTC()
	return &run, nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteDB) GetRun(id string) (*Run, error) {
	run, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// GetRunEnergy returns the stored energy series of a run in step order.
func (s *SQLiteDB) GetRunEnergy(id string) ([]EnergyPoint, error) {
	if _, err := s.GetRun(id); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT step, energy FROM run_energy WHERE run_id = ? ORDER BY step`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query energy: %w", err)
	}
	defer rows.Close()

	var series []EnergyPoint
	for rows.Next() {
		var p EnergyPoint
		if err := rows.Scan(&p.Step, &p.Energy); err != nil {
			return nil, fmt.Errorf("failed to scan energy: %w", err)
		}
		series = append(series, p)
	}
	return series, rows.Err()
}

// ListRuns returns runs newest first with pagination.
func (s *SQLiteDB) ListRuns(query RunsQuery) (*RunsList, error) {
	var totalCount int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	if query.PerPage <= 0 {
		query.PerPage = defaultPerPage
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`, query.PerPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return &RunsList{
		Runs:       runs,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

// SaveSweep stores a sweep and its points in one transaction.
func (s *SQLiteDB) SaveSweep(sweep *Sweep) error {
	if sweep.ID == "" {
		sweep.ID = uuid.New().String()
	}
	if sweep.CreatedAt.IsZero() {
		sweep.CreatedAt = s.now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO sweeps (id, size, steps, burn_in, seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sweep.ID, sweep.Size, sweep.Steps, sweep.BurnIn, sweep.Seed, sweep.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save sweep: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO sweep_points (
			sweep_id, beta, magnetization, abs_magnetization, mean_energy,
			energy_variance, specific_heat, acceptance_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()
	for _, p := range sweep.Points {
		_, err := stmt.Exec(sweep.ID, p.Beta, p.Magnetization, p.AbsMagnetization, p.MeanEnergy,
			p.EnergyVariance, p.SpecificHeat, p.AcceptanceRate)
		if err != nil {
			return fmt.Errorf("failed to save point beta=%v: %w", p.Beta, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sweep: %w", err)
	}
	return nil
}

// GetSweep retrieves a sweep and its points ordered by β.
func (s *SQLiteDB) GetSweep(id string) (*Sweep, error) {
	var sweep Sweep
	var created int64
	err := s.db.QueryRow(`SELECT id, size, steps, burn_in, seed, created_at FROM sweeps WHERE id = ?`, id).
		Scan(&sweep.ID, &sweep.Size, &sweep.Steps, &sweep.BurnIn, &sweep.Seed, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sweep %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sweep: %w", err)
	}
	sweep.CreatedAt = time.Unix(0, created).UTC()

	rows, err := s.db.Query(`SELECT beta, magnetization, abs_magnetization, mean_energy,
			energy_variance, specific_heat, acceptance_rate
		FROM sweep_points WHERE sweep_id = ? ORDER BY beta`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweep points: %w", err)
	}
	defer rows.Close()

	sweep.Points = []ising.SweepPoint{}
	for rows.Next() {
		var p ising.SweepPoint
		err := rows.Scan(&p.Beta, &p.Magnetization, &p.AbsMagnetization, &p.MeanEnergy,
			&p.EnergyVariance, &p.SpecificHeat, &p.AcceptanceRate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweep point: %w", err)
		}
		sweep.Points = append(sweep.Points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sweep points: %w", err)
	}
	return &sweep, nil
}
