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
	trackInteractionQuery = `
        INSERT INTO interactions (session_id, page_number, interaction_type, user_input, response_time_ms)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING *`

	getInteractionsQuery = `SELECT * FROM interactions WHERE session_id = $1 ORDER BY timestamp`
)

// InteractionRepository defines the interface for the interaction audit log
type InteractionRepository interface {
	TrackInteraction(ctx context.Context, interaction *entity.Interaction) (*entity.Interaction, error)
	GetInteractions(ctx context.Context, sessionID string) ([]*entity.Interaction, error)
}

var _ InteractionRepository = &InteractionPostgres{}

type InteractionPostgres struct {
	db *pgxpool.Pool
}

func NewInteractionPostgres(db *pgxpool.Pool) *InteractionPostgres {
	return &InteractionPostgres{db: db}
}

func (r *InteractionPostgres) TrackInteraction(ctx context.Context, interaction *entity.Interaction) (*entity.Interaction, error) {
	sessionID, err := uuid.Parse(interaction.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var created entity.Interaction
	err = pgxscan.Get(ctx, r.db, &created, trackInteractionQuery,
		sessionID,
		interaction.PageNumber,
		interaction.InteractionType,
		interaction.UserInput,
		interaction.ResponseTimeMs,
	)
	if err != nil {
		return nil, fmt.Errorf("track interaction: %w", err)
	}

	return &created, nil
}

func (r *InteractionPostgres) GetInteractions(ctx context.Context, sessionID string) ([]*entity.Interaction, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var interactions []*entity.Interaction
	if err := pgxscan.Select(ctx, r.db, &interactions, getInteractionsQuery, id); err != nil {
		return nil, fmt.Errorf("get interactions: %w", err)
	}

	return interactions, nil
}
