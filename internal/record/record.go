// Package record persists every generation of a run to SQLite so runs can
// be inspected or resumed from any generation.
package record

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"falling-sand/internal/ctxlog"
	"falling-sand/internal/sims/sand"
)

// ErrNoRun is returned when frames are recorded before Begin.
var ErrNoRun = errors.New("record: no active run")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	source     TEXT NOT NULL,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS frames (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	generation INTEGER NOT NULL,
	moves      INTEGER NOT NULL,
	sand       INTEGER NOT NULL,
	snapshot   BLOB NOT NULL,
	PRIMARY KEY (run_id, generation)
);`

// Run describes one recorded simulation run.
type Run struct {
	ID        uuid.UUID
	StartedAt time.Time
	Source    string
	Width     int
	Height    int
}

// Frame is a recorded generation without its snapshot body.
type Frame struct {
	Generation int
	Moves      int
	Sand       int
}

// Recorder writes generations of the active run to a SQLite database.
type Recorder struct {
	db    *sql.DB
	run   uuid.UUID
	every int
}

// Open creates or opens the recording database at path. Every is the
// generation stride between stored frames; values below one store all.
func Open(path string, every int) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if every < 1 {
		every = 1
	}
	return &Recorder{db: db, every: every}, nil
}

// Close releases the database.
func (r *Recorder) Close() error { return r.db.Close() }

// RunID returns the id of the active run, or uuid.Nil before Begin.
func (r *Recorder) RunID() uuid.UUID { return r.run }

// Begin starts a new run and stores g as its first frame.
func (r *Recorder) Begin(ctx context.Context, g *sand.Grid, source string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, source, width, height) VALUES (?, ?, ?, ?, ?)`,
		id.String(), time.Now().UTC().Format(time.RFC3339Nano), source, g.Width(), g.Height())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}
	r.run = id
	ctxlog.FromContext(ctx).Info("Recording run.", "run_id", id.String(), "source", source)
	if err := r.write(ctx, g); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Observe stores the generation g just completed when it falls on the
// recording stride.
func (r *Recorder) Observe(ctx context.Context, g *sand.Grid, _ time.Duration) error {
	if r.run == uuid.Nil {
		return ErrNoRun
	}
	if g.Generation()%r.every != 0 {
		return nil
	}
	return r.write(ctx, g)
}

func (r *Recorder) write(ctx context.Context, g *sand.Grid) error {
	var buf bytes.Buffer
	if err := g.Encode(&buf); err != nil {
		return fmt.Errorf("encode generation %d: %w", g.Generation(), err)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO frames (run_id, generation, moves, sand, snapshot) VALUES (?, ?, ?, ?, ?)`,
		r.run.String(), g.Generation(), g.Moves(), g.Count(sand.Sand), buf.Bytes())
	if err != nil {
		return fmt.Errorf("insert generation %d: %w", g.Generation(), err)
	}
	return nil
}

// Runs lists recorded runs, oldest first.
func (r *Recorder) Runs(ctx context.Context) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, source, width, height FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			id      string
			started string
		)
		if err := rows.Scan(&id, &started, &run.Source, &run.Width, &run.Height); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse start time %q: %w", started, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Frames lists the generations stored for run in order.
func (r *Recorder) Frames(ctx context.Context, run uuid.UUID) ([]Frame, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT generation, moves, sand FROM frames WHERE run_id = ? ORDER BY generation`, run.String())
	if err != nil {
		return nil, fmt.Errorf("select frames: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var frames []Frame
	for rows.Next() {
		var f Frame
		if err := rows.Scan(&f.Generation, &f.Moves, &f.Sand); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// Restore rebuilds the grid stored for run at generation.
func (r *Recorder) Restore(ctx context.Context, run uuid.UUID, generation int) (*sand.Grid, error) {
	var snapshot []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT snapshot FROM frames WHERE run_id = ? AND generation = ?`, run.String(), generation).
		Scan(&snapshot)
	if err != nil {
		return nil, fmt.Errorf("select generation %d of run %s: %w", generation, run, err)
	}
	g, err := sand.Decode(bytes.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("decode generation %d of run %s: %w", generation, run, err)
	}
	return g, nil
}
