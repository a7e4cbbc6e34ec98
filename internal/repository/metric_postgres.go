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
	saveMetricQuery = `
        INSERT INTO analytics_metrics (session_id, metric_name, metric_value)
        VALUES ($1, $2, $3)
        RETURNING *`

	getMetricsQuery = `SELECT * FROM analytics_metrics WHERE session_id = $1 ORDER BY created_at`
)

// MetricRepository persists computed analytics snapshots per session.
type MetricRepository interface {
	SaveMetric(ctx context.Context, sessionID, name, valueJSON string) (*entity.Metric, error)
	GetMetrics(ctx context.Context, sessionID string) ([]*entity.Metric, error)
}

var _ MetricRepository = &MetricPostgres{}

type MetricPostgres struct {
	db *pgxpool.Pool
}

func NewMetricPostgres(db *pgxpool.Pool) *MetricPostgres {
	return &MetricPostgres{db: db}
}

func (r *MetricPostgres) SaveMetric(ctx context.Context, sessionID, name, valueJSON string) (*entity.Metric, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var metric entity.Metric
	if err := pgxscan.Get(ctx, r.db, &metric, saveMetricQuery, id, name, valueJSON); err != nil {
		return nil, fmt.Errorf("save metric: %w", err)
	}

	return &metric, nil
}

func (r *MetricPostgres) GetMetrics(ctx context.Context, sessionID string) ([]*entity.Metric, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	var metrics []*entity.Metric
	if err := pgxscan.Select(ctx, r.db, &metrics, getMetricsQuery, id); err != nil {
		return nil, fmt.Errorf("get metrics: %w", err)
	}

	return metrics, nil
}
