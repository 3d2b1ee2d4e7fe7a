package repository

import (
	"context"
	"math"

	"jobscout/internal/database"
)

type Overview struct {
	NewToday     int
	TotalApplied int
	TotalReplied int
	ResponseRate float64
}

type Funnel struct {
	Discovered int
	Viewed     int
	Applied    int
	Replied    int
}

type SourceStat struct {
	Source     string
	SourceType string
	Total      int
	AvgScore   int
	Applied    int
}

type CategoryStat struct {
	Category string
	Total    int
	AvgScore int
	Applied  int
}

type AnalyticsRepository interface {
	Overview(ctx context.Context) (Overview, error)
	Funnel(ctx context.Context) (Funnel, error)
	SourceStats(ctx context.Context) ([]SourceStat, error)
	CategoryStats(ctx context.Context) ([]CategoryStat, error)
}

type PostgresAnalyticsRepository struct {
	db database.DB
}

func NewPostgresAnalyticsRepository(db database.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) Overview(ctx context.Context) (Overview, error) {
	var out Overview

	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM opportunities WHERE discovered_at::date = CURRENT_DATE`)
	if err := row.Scan(&out.NewToday); err != nil {
		return Overview{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT opportunity_id) FROM applications WHERE status IN ('applied', 'replied')`)
	if err := row.Scan(&out.TotalApplied); err != nil {
		return Overview{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE status = 'replied'`)
	if err := row.Scan(&out.TotalReplied); err != nil {
		return Overview{}, err
	}

	if out.TotalApplied > 0 {
		rate := float64(out.TotalReplied) / float64(out.TotalApplied) * 100
		out.ResponseRate = math.Round(rate*10) / 10
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) Funnel(ctx context.Context) (Funnel, error) {
	var out Funnel

	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM opportunities`)
	if err := row.Scan(&out.Discovered); err != nil {
		return Funnel{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT opportunity_id) FROM applications WHERE status = 'viewed'`)
	if err := row.Scan(&out.Viewed); err != nil {
		return Funnel{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT opportunity_id) FROM applications WHERE status IN ('applied', 'replied', 'rejected')`)
	if err := row.Scan(&out.Applied); err != nil {
		return Funnel{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE status = 'replied'`)
	if err := row.Scan(&out.Replied); err != nil {
		return Funnel{}, err
	}

	return out, nil
}

func (r *PostgresAnalyticsRepository) SourceStats(ctx context.Context) ([]SourceStat, error) {
	rows, err := r.db.Query(ctx,
		`SELECT o.source,
		        COALESCE(o.source_type, 'automated'),
		        COUNT(*),
		        COALESCE(ROUND(AVG(o.score)), 0),
		        COUNT(*) FILTER (WHERE o.id IN (
			        SELECT opportunity_id FROM applications WHERE status IN ('applied', 'replied')
		        ))
		 FROM opportunities o
		 GROUP BY o.source, COALESCE(o.source_type, 'automated')
		 ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SourceStat, 0)
	for rows.Next() {
		var s SourceStat
		if err := rows.Scan(&s.Source, &s.SourceType, &s.Total, &s.AvgScore, &s.Applied); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(o.category, 'other'),
		        COUNT(*),
		        COALESCE(ROUND(AVG(o.score)), 0),
		        COUNT(*) FILTER (WHERE o.id IN (
			        SELECT opportunity_id FROM applications WHERE status IN ('applied', 'replied')
		        ))
		 FROM opportunities o
		 GROUP BY COALESCE(o.category, 'other')
		 ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CategoryStat, 0)
	for rows.Next() {
		var c CategoryStat
		if err := rows.Scan(&c.Category, &c.Total, &c.AvgScore, &c.Applied); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
