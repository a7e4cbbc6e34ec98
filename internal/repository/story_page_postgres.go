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
	createStoryPageQuery = `
        INSERT INTO story_pages
            (session_id, page_number, educational_concept, story_text, agent_prompt,
             kid_response, kid_response_timestamp, panel_1_url, panel_2_url, time_spent_seconds)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING *`

	getStoryPagesQuery = `SELECT * FROM story_pages WHERE session_id = $1 ORDER BY page_number`

	updateStoryPagePanelsQuery = `
        UPDATE story_pages
        SET panel_1_url = COALESCE($3, panel_1_url),
            panel_2_url = COALESCE($4, panel_2_url)
        WHERE session_id = $1 AND page_number = $2`
)

// StoryPageRepository defines the interface for story page persistence
type StoryPageRepository interface {
	CreateStoryPage(ctx context.Context, page *entity.StoryPage) (*entity.StoryPage, error)
	GetStoryPages(ctx context.Context, sessionID string) ([]*entity.StoryPage, error)
	UpdateStoryPagePanels(ctx context.Context, sessionID string, pageNumber int, panel1URL, panel2URL *string) error
}

var _ StoryPageRepository = &StoryPagePostgres{}

type StoryPagePostgres struct {
	db *pgxpool.Pool
}

func NewStoryPagePostgres(db *pgxpool.Pool) *StoryPagePostgres {
	return &StoryPagePostgres{db: db}
}

func (r *StoryPagePostgres) CreateStoryPage(ctx context.Context, page *entity.StoryPage) (*entity.StoryPage, error) {
	sessionID, err := uuid.Parse(page.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var created entity.StoryPage
	err = pgxscan.Get(ctx, r.db, &created, createStoryPageQuery,
		sessionID,
		page.PageNumber,
		page.EducationalConcept,
		page.StoryText,
		page.AgentPrompt,
		page.KidResponse,
		page.KidResponseTimestamp,
		page.Panel1URL,
		page.Panel2URL,
		page.TimeSpentSeconds,
	)
	if err != nil {
		return nil, fmt.Errorf("create story page: %w", err)
	}

	return &created, nil
}

func (r *StoryPagePostgres) GetStoryPages(ctx context.Context, sessionID string) ([]*entity.StoryPage, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var pages []*entity.StoryPage
	if err := pgxscan.Select(ctx, r.db, &pages, getStoryPagesQuery, id); err != nil {
		return nil, fmt.Errorf("get story pages: %w", err)
	}

	return pages, nil
}

// UpdateStoryPagePanels fills in panel URLs once generation completes.
// Nil arguments leave the stored value untouched.
func (r *StoryPagePostgres) UpdateStoryPagePanels(ctx context.Context, sessionID string, pageNumber int, panel1URL, panel2URL *string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	if _, err := r.db.Exec(ctx, updateStoryPagePanelsQuery, id, pageNumber, panel1URL, panel2URL); err != nil {
		return fmt.Errorf("update story page panels: %w", err)
	}

	return nil
}
