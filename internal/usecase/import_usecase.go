package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobscout/internal/domain/opportunity"
	"jobscout/internal/pkg/fingerprint"
	"jobscout/internal/repository"
	"jobscout/internal/scoring"
)

// emailBodyLimit caps how much of an alert email body is kept as the
// description.
const emailBodyLimit = 5000

type ManualImportParams struct {
	Title       string
	Description string
	URL         string
	Source      string
	SourceType  opportunity.SourceType
	Tags        []string
}

type EmailImportParams struct {
	Subject string
	Body    string
	From    string
	URL     string
}

// ImportResult reports what the scoring engine made of the imported posting.
type ImportResult struct {
	ID            uuid.UUID
	Score         int
	MatchReason   string
	MatchedSkills []string
	Category      opportunity.Category
}

type ImportUsecase interface {
	ImportManual(ctx context.Context, params ManualImportParams) (ImportResult, error)
	ImportEmail(ctx context.Context, params EmailImportParams) (ImportResult, error)
}

type Importer struct {
	opps   repository.OpportunityRepository
	engine scoring.Evaluator
	cache  ListCache
	logger *zap.Logger
}

func NewImportUsecase(opps repository.OpportunityRepository, engine scoring.Evaluator, cache ListCache, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{opps: opps, engine: engine, cache: cache, logger: logger}
}

// ImportManual ingests a posting pasted in by hand, e.g. from a freelance
// platform the scrapers do not cover. Unlike discovery, imports bypass the
// score gate: the user already decided the posting is worth keeping.
func (u *Importer) ImportManual(ctx context.Context, params ManualImportParams) (ImportResult, error) {
	if strings.TrimSpace(params.Title) == "" ||
		strings.TrimSpace(params.Description) == "" ||
		strings.TrimSpace(params.URL) == "" {
		return ImportResult{}, ErrInvalidInput
	}

	source := params.Source
	if source == "" {
		source = "manual"
	}
	sourceType := params.SourceType
	if sourceType == "" {
		sourceType = opportunity.SourceTypeManual
	}

	posting := opportunity.Posting{
		Title:       params.Title,
		Description: params.Description,
		Source:      source,
		URL:         params.URL,
		Tags:        params.Tags,
	}

	return u.ingest(ctx, posting, fingerprint.New(params.URL, params.Title), sourceType)
}

// ImportEmail ingests a job alert email delivered by a parsing webhook. The
// subject becomes the title and the body the description; alerts without a
// URL get a synthetic one derived from the fingerprint.
func (u *Importer) ImportEmail(ctx context.Context, params EmailImportParams) (ImportResult, error) {
	if strings.TrimSpace(params.Subject) == "" || strings.TrimSpace(params.Body) == "" {
		return ImportResult{}, ErrInvalidInput
	}

	title := params.Subject
	description := params.Body
	if len(description) > emailBodyLimit {
		description = description[:emailBodyLimit]
	}

	fpSeed := params.URL
	if fpSeed == "" {
		fpSeed = title
	}
	fp := fingerprint.New(fpSeed, title)

	url := params.URL
	if url == "" {
		url = "email://" + fp
	}

	posting := opportunity.Posting{
		Title:       title,
		Description: description,
		Source:      emailSource(params.From),
		URL:         url,
	}

	return u.ingest(ctx, posting, fp, opportunity.SourceTypeEmail)
}

func (u *Importer) ingest(ctx context.Context, posting opportunity.Posting, fp string, sourceType opportunity.SourceType) (ImportResult, error) {
	exists, err := u.opps.ExistsByFingerprint(ctx, fp)
	if err != nil {
		return ImportResult{}, err
	}
	if exists {
		return ImportResult{}, repository.ErrDuplicateOpportunity
	}

	res := u.engine.Evaluate(posting)

	id, err := u.opps.Insert(ctx, opportunity.Scored{
		Posting:       posting,
		Score:         res.Score,
		Category:      res.Category,
		MatchedSkills: res.MatchedSkills,
		MatchReason:   res.MatchReason,
		Fingerprint:   fp,
		SourceType:    sourceType,
	})
	if err != nil {
		return ImportResult{}, err
	}

	if u.cache != nil {
		if err := u.cache.InvalidateOpportunityCaches(ctx); err != nil {
			u.logger.Debug("cache invalidation failed", zap.Error(err))
		}
	}

	return ImportResult{
		ID:            id,
		Score:         res.Score,
		MatchReason:   res.MatchReason,
		MatchedSkills: res.MatchedSkills,
		Category:      res.Category,
	}, nil
}

func emailSource(from string) string {
	if from == "" {
		return "email"
	}
	lower := strings.ToLower(from)
	switch {
	case strings.Contains(lower, "upwork"):
		return "Upwork (email)"
	case strings.Contains(lower, "freelancer"):
		return "Freelancer (email)"
	case strings.Contains(lower, "indeed"):
		return "Indeed (email)"
	case strings.Contains(lower, "naukri"):
		return "Naukri (email)"
	default:
		return "Email: " + from
	}
}
