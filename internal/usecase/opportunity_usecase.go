package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobscout/internal/domain/opportunity"
	"jobscout/internal/proposal"
	"jobscout/internal/repository"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type ListParams struct {
	MinScore        int
	Source          string
	Status          string
	ExcludeArchived bool
	Limit           int
}

// Detail is one opportunity together with its latest application, if any.
type Detail struct {
	opportunity.Row
	Application *opportunity.Application
}

// StatusUpdate is the outcome of a workflow transition.
type StatusUpdate struct {
	Status       opportunity.ApplicationStatus
	ProposalText string
}

type OpportunityUsecase interface {
	List(ctx context.Context, params ListParams) ([]repository.ListRow, error)
	Get(ctx context.Context, id uuid.UUID) (Detail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status opportunity.ApplicationStatus, method opportunity.ApplicationMethod, proposalText string) (StatusUpdate, error)
}

type Opportunities struct {
	opps      repository.OpportunityRepository
	apps      repository.ApplicationRepository
	proposals *proposal.Generator
	cache     ListCache
	logger    *zap.Logger
}

func NewOpportunityUsecase(opps repository.OpportunityRepository, apps repository.ApplicationRepository, proposals *proposal.Generator, cache ListCache, logger *zap.Logger) *Opportunities {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opportunities{opps: opps, apps: apps, proposals: proposals, cache: cache, logger: logger}
}

func (u *Opportunities) List(ctx context.Context, params ListParams) ([]repository.ListRow, error) {
	if params.Limit < 0 || params.Limit > maxListLimit {
		return nil, ErrInvalidInput
	}
	if params.Limit == 0 {
		params.Limit = defaultListLimit
	}
	if params.Status != "" && !opportunity.ValidStatus(opportunity.ApplicationStatus(params.Status)) {
		return nil, ErrInvalidInput
	}

	key := listCacheKey(params)
	if u.cache != nil {
		var cached []repository.ListRow
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			u.logger.Debug("list cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	rows, err := u.opps.List(ctx, repository.OpportunityFilter{
		MinScore:        params.MinScore,
		Source:          params.Source,
		Status:          opportunity.ApplicationStatus(params.Status),
		ExcludeArchived: params.ExcludeArchived,
		Limit:           params.Limit,
	})
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, rows, 0); err != nil {
			u.logger.Debug("list cache set failed", zap.Error(err))
		}
	}

	return rows, nil
}

func (u *Opportunities) Get(ctx context.Context, id uuid.UUID) (Detail, error) {
	row, err := u.opps.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	detail := Detail{Row: row}
	app, err := u.apps.FindLatestByOpportunityID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return detail, nil
		}
		return Detail{}, err
	}
	detail.Application = &app
	return detail, nil
}

// UpdateStatus moves an opportunity through the application workflow. A
// missing proposal is generated from templates when the new status is
// applied; applied_at is only stamped for applied and replied.
func (u *Opportunities) UpdateStatus(ctx context.Context, id uuid.UUID, status opportunity.ApplicationStatus, method opportunity.ApplicationMethod, proposalText string) (StatusUpdate, error) {
	if !opportunity.ValidStatus(status) {
		return StatusUpdate{}, ErrInvalidInput
	}
	if method == "" {
		method = opportunity.MethodManual
	}

	row, err := u.opps.GetByID(ctx, id)
	if err != nil {
		return StatusUpdate{}, err
	}

	existing, err := u.apps.FindLatestByOpportunityID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrApplicationNotFound) {
		return StatusUpdate{}, err
	}
	if err == nil && opportunity.NonApplicable(existing.Status) && status == opportunity.StatusApplied {
		return StatusUpdate{}, ErrNotApplicable
	}

	if proposalText == "" && status == opportunity.StatusApplied && u.proposals != nil {
		proposalText = u.proposals.GenerateFor(row)
	}

	var appliedAt *time.Time
	if status == opportunity.StatusApplied || status == opportunity.StatusReplied {
		now := time.Now().UTC()
		appliedAt = &now
	}

	if err := u.apps.Upsert(ctx, opportunity.Application{
		OpportunityID: id,
		Status:        status,
		AppliedAt:     appliedAt,
		ProposalText:  proposalText,
		Method:        method,
	}); err != nil {
		return StatusUpdate{}, err
	}

	if u.cache != nil {
		if err := u.cache.InvalidateOpportunityCaches(ctx); err != nil {
			u.logger.Debug("cache invalidation failed", zap.Error(err))
		}
	}

	return StatusUpdate{Status: status, ProposalText: proposalText}, nil
}

func listCacheKey(p ListParams) string {
	return fmt.Sprintf("opportunities:list:min=%d:src=%s:status=%s:excl=%t:limit=%d",
		p.MinScore, p.Source, p.Status, p.ExcludeArchived, p.Limit)
}
