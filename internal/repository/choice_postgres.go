package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	trackChoiceQuery = `
        INSERT INTO choices (session_id, page_number, suggested_options, kid_choice, was_default)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING *`

	getChoicesQuery = `SELECT * FROM choices WHERE session_id = $1 ORDER BY page_number`
)

// ChoiceRepository defines the interface for decision-point persistence
type ChoiceRepository interface {
	TrackChoice(ctx context.Context, choice *entity.Choice) (*entity.Choice, error)
	GetChoices(ctx context.Context, sessionID string) ([]*entity.Choice, error)
}

var _ ChoiceRepository = &ChoicePostgres{}

type ChoicePostgres struct {
	db *pgxpool.Pool
}

func NewChoicePostgres(db *pgxpool.Pool) *ChoicePostgres {
	return &ChoicePostgres{db: db}
}

func (r *ChoicePostgres) TrackChoice(ctx context.Context, choice *entity.Choice) (*entity.Choice, error) {
	sessionID, err := uuid.Parse(choice.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var created entity.Choice
	err = pgxscan.Get(ctx, r.db, &created, trackChoiceQuery,
		sessionID,
		choice.PageNumber,
		choice.SuggestedOptions,
		choice.KidChoice,
		choice.WasDefault,
	)
	if err != nil {
		return nil, fmt.Errorf("track choice: %w", err)
	}

	return &created, nil
}

func (r *ChoicePostgres) GetChoices(ctx context.Context, sessionID string) ([]*entity.Choice, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var choices []*entity.Choice
	if err := pgxscan.Select(ctx, r.db, &choices, getChoicesQuery, id); err != nil {
		return nil, fmt.Errorf("get choices: %w", err)
	}

	return choices, nil
}
