package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobscout/internal/database"
	"jobscout/internal/domain/opportunity"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	FindLatestByOpportunityID(ctx context.Context, opportunityID uuid.UUID) (opportunity.Application, error)
	Upsert(ctx context.Context, app opportunity.Application) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) FindLatestByOpportunityID(ctx context.Context, opportunityID uuid.UUID) (opportunity.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, opportunity_id, status, applied_at, COALESCE(proposal_text, ''), COALESCE(method, 'manual')
		 FROM applications
		 WHERE opportunity_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		opportunityID,
	)

	var out opportunity.Application
	var status, method string
	if err := row.Scan(&out.ID, &out.OpportunityID, &status, &out.AppliedAt, &out.ProposalText, &method); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return opportunity.Application{}, ErrApplicationNotFound
		}
		return opportunity.Application{}, err
	}
	out.Status = opportunity.ApplicationStatus(status)
	out.Method = opportunity.ApplicationMethod(method)
	return out, nil
}

// Upsert updates the existing application record for the opportunity or
// creates one. One workflow record per opportunity.
func (r *PostgresApplicationRepository) Upsert(ctx context.Context, app opportunity.Application) error {
	existing, err := r.FindLatestByOpportunityID(ctx, app.OpportunityID)
	if err != nil && !errors.Is(err, ErrApplicationNotFound) {
		return err
	}

	if err == nil {
		_, err = r.db.Exec(ctx,
			`UPDATE applications
			 SET status = $2, applied_at = $3, proposal_text = $4, method = $5
			 WHERE id = $1`,
			existing.ID, string(app.Status), app.AppliedAt, nullableText(app.ProposalText), string(app.Method),
		)
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO applications (id, opportunity_id, status, applied_at, proposal_text, method, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		uuid.New(), app.OpportunityID, string(app.Status), app.AppliedAt,
		nullableText(app.ProposalText), string(app.Method), time.Now().UTC(),
	)
	return err
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
