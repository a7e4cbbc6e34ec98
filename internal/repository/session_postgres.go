package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createSessionQuery = `
        INSERT INTO sessions (id, story_type)
        VALUES ($1, $2)
        RETURNING *`

	getSessionByIDQuery = `SELECT * FROM sessions WHERE id = $1`

	getAllSessionsQuery = `SELECT * FROM sessions ORDER BY created_at DESC`

	getSessionStatsQuery = `
        SELECT
            COUNT(*) AS total_sessions,
            COUNT(*) FILTER (WHERE status = 'completed') AS completed_sessions,
            AVG(EXTRACT(EPOCH FROM (completed_at - created_at))) AS avg_session_time
        FROM sessions`

	updateSessionPhotoQuery = `
        UPDATE sessions SET kid_photo_url = $2 WHERE id = $1
        RETURNING *`

	advanceSessionPageQuery = `
        UPDATE sessions
        SET current_page = $3, chosen_planet = $4
        WHERE id = $1 AND status = 'active' AND current_page = $2
        RETURNING *`

	completeSessionQuery = `
        UPDATE sessions
        SET status = 'completed', completed_at = COALESCE(completed_at, now())
        WHERE id = $1
        RETURNING *`

	updateShareableLinkQuery = `
        UPDATE sessions SET shareable_link = $2 WHERE id = $1
        RETURNING *`
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	CreateSession(ctx context.Context, id, storyType string) (*entity.Session, error)
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
	GetAllSessions(ctx context.Context) ([]*entity.Session, error)
	GetSessionStats(ctx context.Context) (*entity.SessionStats, error)
	UpdateSessionPhoto(ctx context.Context, id, photoURL string) (*entity.Session, error)
	AdvanceSessionPage(ctx context.Context, id string, fromPage, toPage int, chosenPlanet string) (*entity.Session, error)
	CompleteSession(ctx context.Context, id string) (*entity.Session, error)
	UpdateSessionShareableLink(ctx context.Context, id, link string) (*entity.Session, error)
}

var _ SessionRepository = &SessionPostgres{}

// SessionPostgres implements SessionRepository using PostgreSQL
type SessionPostgres struct {
	db *pgxpool.Pool
}

func NewSessionPostgres(db *pgxpool.Pool) *SessionPostgres {
	return &SessionPostgres{db: db}
}

func (r *SessionPostgres) CreateSession(ctx context.Context, id, storyType string) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var session entity.Session
	if err := pgxscan.Get(ctx, r.db, &session, createSessionQuery, sessionID, storyType); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &session, nil
}

func (r *SessionPostgres) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID", entity.ErrSessionNotFound)
	}

	var session entity.Session
	if err := pgxscan.Get(ctx, r.db, &session, getSessionByIDQuery, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &session, nil
}

func (r *SessionPostgres) GetAllSessions(ctx context.Context) ([]*entity.Session, error) {
	var sessions []*entity.Session
	if err := pgxscan.Select(ctx, r.db, &sessions, getAllSessionsQuery); err != nil {
		return nil, fmt.Errorf("get all sessions: %w", err)
	}

	return sessions, nil
}

func (r *SessionPostgres) GetSessionStats(ctx context.Context) (*entity.SessionStats, error) {
	var stats entity.SessionStats
	if err := pgxscan.Get(ctx, r.db, &stats, getSessionStatsQuery); err != nil {
		return nil, fmt.Errorf("get session stats: %w", err)
	}

	return &stats, nil
}

func (r *SessionPostgres) UpdateSessionPhoto(ctx context.Context, id, photoURL string) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID", entity.ErrSessionNotFound)
	}

	var session entity.Session
	if err := pgxscan.Get(ctx, r.db, &session, updateSessionPhotoQuery, sessionID, photoURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("update session photo: %w", err)
	}

	return &session, nil
}

// AdvanceSessionPage moves the session from fromPage to toPage. The
// WHERE clause doubles as an optimistic concurrency check: when the
// session is completed, missing, or already past fromPage, no row
// matches and pgx.ErrNoRows surfaces for the caller to classify.
func (r *SessionPostgres) AdvanceSessionPage(ctx context.Context, id string, fromPage, toPage int, chosenPlanet string) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID", entity.ErrSessionNotFound)
	}

	var session entity.Session
	if err := pgxscan.Get(ctx, r.db, &session, advanceSessionPageQuery, sessionID, fromPage, toPage, chosenPlanet); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("advance session page: %w", err)
	}

	return &session, nil
}

func (r *SessionPostgres) CompleteSession(ctx context.Context, id string) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID", entity.ErrSessionNotFound)
	}

	var session entity.Session
	if err := pgxscan.Get(ctx, r.db, &session, completeSessionQuery, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("complete session: %w", err)
	}

	return &session, nil
}

func (r *SessionPostgres) UpdateSessionShareableLink(ctx context.Context, id, link string) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID", entity.ErrSessionNotFound)
	}

	var session entity.Session
	if err := pgxscan.Get(ctx, r.db, &session, updateShareableLinkQuery, sessionID, link); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("update shareable link: %w", err)
	}

	return &session, nil
}
