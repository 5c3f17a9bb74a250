package store

import (
	"context"
	_ "embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/punch"
)

// schemaSQL is embedded so the service can self-bootstrap its database schema.
//
//go:embed schema.sql
var schemaSQL string

// ErrProjectNotFound indicates an operation referencing a nonexistent
// project. No side effects are performed.
var ErrProjectNotFound = errors.New("project not found")

// PostgresStore is the durable persistence layer for punch events.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a connection pool and fails fast if DB is unreachable.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema applies schema.sql. Safe to run multiple times.
func (p *PostgresStore) EnsureSchema() error {
	_, err := p.pool.Exec(context.Background(), schemaSQL)
	return err
}

// Ping is used by readiness endpoint to validate DB connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// CreateUser inserts a user and returns its id.
func (p *PostgresStore) CreateUser(ctx context.Context, name string) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx, `
		INSERT INTO users(name) VALUES ($1) RETURNING id
	`, name).Scan(&id)
	return id, err
}

// CreateProject inserts a project for a user and returns its id. Overhead
// is the per-session ramp-up deduction in minutes and must be non-negative
// (also enforced by a schema constraint).
func (p *PostgresStore) CreateProject(ctx context.Context, userID int64, name string, overhead int) (int64, error) {
	if overhead < 0 {
		return 0, errors.New("overhead must be non-negative")
	}
	var id int64
	err := p.pool.QueryRow(ctx, `
		INSERT INTO projects(user_id, name, overhead) VALUES ($1,$2,$3) RETURNING id
	`, userID, name, overhead).Scan(&id)
	return id, err
}

// Project loads a project's configuration, including the owning user's name.
func (p *PostgresStore) Project(ctx context.Context, projectID int64) (models.Project, error) {
	var proj models.Project
	err := p.pool.QueryRow(ctx, `
		SELECT p.id, u.name, p.name, p.overhead
		FROM projects p JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, projectID).Scan(&proj.ID, &proj.Owner, &proj.Name, &proj.Overhead)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Project{}, ErrProjectNotFound
	}
	return proj, err
}

// FirstProject returns the oldest project, the singleton in a stock
// single-user deployment.
func (p *PostgresStore) FirstProject(ctx context.Context) (models.Project, error) {
	var proj models.Project
	err := p.pool.QueryRow(ctx, `
		SELECT p.id, u.name, p.name, p.overhead
		FROM projects p JOIN users u ON u.id = p.user_id
		ORDER BY p.id
		LIMIT 1
	`).Scan(&proj.ID, &proj.Owner, &proj.Name, &proj.Overhead)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Project{}, ErrProjectNotFound
	}
	return proj, err
}

// PunchEventsSince returns all in/out events for the project with an
// instant at or after since, ascending by instant. Events sharing an
// instant come back in insertion order.
func (p *PostgresStore) PunchEventsSince(ctx context.Context, projectID int64, since time.Time) ([]models.Event, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, project_id, event_type, clock
		FROM events
		WHERE project_id = $1
		  AND event_type IN ('in', 'out')
		  AND clock >= $2
		ORDER BY clock, id
	`, projectID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Type, &e.Clock); err != nil {
			return nil, err
		}
		e.Clock = e.Clock.UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}

// LastPunchEvent returns the most recent in/out event for the project, or
// nil when the project has none.
func (p *PostgresStore) LastPunchEvent(ctx context.Context, projectID int64) (*models.Event, error) {
	e, err := lastPunchEvent(ctx, p.pool, projectID)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// queryRower is satisfied by both the pool and a transaction.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func lastPunchEvent(ctx context.Context, q queryRower, projectID int64) (*models.Event, error) {
	var e models.Event
	err := q.QueryRow(ctx, `
		SELECT id, project_id, event_type, clock
		FROM events
		WHERE project_id = $1
		  AND event_type IN ('in', 'out')
		ORDER BY clock DESC, id DESC
		LIMIT 1
	`, projectID).Scan(&e.ID, &e.ProjectID, &e.Type, &e.Clock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Clock = e.Clock.UTC()
	return &e, nil
}

// RecordPunch validates a proposed punch against the project's current
// state and appends the event, as one atomic unit. The transaction takes a
// row lock on the project, so two near-simultaneous punches cannot both
// observe the same last event and both succeed.
//
// requestID deduplicates client retries: a punch whose requestID was
// already recorded returns the stored event with duplicate=true instead of
// failing the direction check.
func (p *PostgresStore) RecordPunch(ctx context.Context, projectID int64, direction models.Direction, requestID string) (models.Event, bool, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return models.Event{}, false, err
	}
	defer tx.Rollback(ctx)

	// Serialization point: punches for one project queue up here.
	var lockedID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM projects WHERE id = $1 FOR UPDATE
	`, projectID).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Event{}, false, ErrProjectNotFound
	}
	if err != nil {
		return models.Event{}, false, err
	}

	if requestID != "" {
		var e models.Event
		err = tx.QueryRow(ctx, `
			SELECT id, project_id, event_type, clock
			FROM events
			WHERE project_id = $1 AND request_id = $2
		`, projectID, requestID).Scan(&e.ID, &e.ProjectID, &e.Type, &e.Clock)
		if err == nil {
			e.Clock = e.Clock.UTC()
			return e, true, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, false, err
		}
	}

	// Confirm that this punch is consistent with the most recent punch.
	last, err := lastPunchEvent(ctx, tx, projectID)
	if err != nil {
		return models.Event{}, false, err
	}
	if err := punch.Validate(direction, last); err != nil {
		return models.Event{}, false, err
	}

	event := models.Event{
		ProjectID: projectID,
		Type:      direction.EventType(),
		Clock:     time.Now().UTC(),
	}
	var reqID any
	if requestID != "" {
		reqID = requestID
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO events(project_id, event_type, clock, request_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, event.ProjectID, event.Type, event.Clock, reqID).Scan(&event.ID)
	if err != nil {
		return models.Event{}, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Event{}, false, err
	}
	return event, false, nil
}

// InsertEvents bulk-appends pre-built events for a project, used by the
// seed command. No state-machine validation is applied; callers are
// expected to provide a well-formed alternating sequence.
func (p *PostgresStore) InsertEvents(ctx context.Context, projectID int64, events []models.Event) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, e := range events {
		if _, err := tx.Exec(ctx, `
			INSERT INTO events(project_id, event_type, clock)
			VALUES ($1,$2,$3)
		`, projectID, e.Type, e.Clock.UTC()); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
