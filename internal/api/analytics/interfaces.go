package analytics

import (
	"context"

	"github.com/heyverne/verne-backend/internal/entity"
)

type AnalyticsUsecase interface {
	TrackInteraction(ctx context.Context, req *entity.TrackInteractionRequest) error
	Dashboard(ctx context.Context) (*entity.DashboardResponse, error)
	SessionAnalytics(ctx context.Context, sessionID string) (*entity.SessionAnalyticsResponse, error)
}
