package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"jobscout/internal/database"
	"jobscout/internal/domain/opportunity"
)

var (
	ErrOpportunityNotFound  = errors.New("opportunity not found")
	ErrDuplicateOpportunity = errors.New("opportunity already exists")
)

// OpportunityFilter narrows the listing query. Zero values mean "no filter";
// ExcludeArchived defaults to true at the usecase layer.
type OpportunityFilter struct {
	MinScore        int
	Source          string
	Status          opportunity.ApplicationStatus
	ExcludeArchived bool
	Limit           int
}

// ListRow is an opportunity joined with its latest application record.
type ListRow struct {
	opportunity.Row

	Status       opportunity.ApplicationStatus
	AppliedAt    *time.Time
	ProposalText string
	Method       opportunity.ApplicationMethod
}

type OpportunityRepository interface {
	ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error)
	Insert(ctx context.Context, opp opportunity.Scored) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (opportunity.Row, error)
	List(ctx context.Context, filter OpportunityFilter) ([]ListRow, error)
}

type PostgresOpportunityRepository struct {
	db database.DB
}

func NewPostgresOpportunityRepository(db database.DB) *PostgresOpportunityRepository {
	return &PostgresOpportunityRepository{db: db}
}

func (r *PostgresOpportunityRepository) ExistsByFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM opportunities WHERE fingerprint = $1)`, fingerprint)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresOpportunityRepository) Insert(ctx context.Context, opp opportunity.Scored) (uuid.UUID, error) {
	id := uuid.New()

	tags, err := marshalOrNil(opp.Tags)
	if err != nil {
		return uuid.Nil, err
	}
	skills, err := marshalOrNil(opp.MatchedSkills)
	if err != nil {
		return uuid.Nil, err
	}

	sourceType := opp.SourceType
	if sourceType == "" {
		sourceType = opportunity.SourceTypeAutomated
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO opportunities (
			id, title, description, source, url, score, tags, posted_at,
			fingerprint, source_type, matched_skills, match_reason, category
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		id,
		opp.Title,
		opp.Description,
		opp.Source,
		opp.URL,
		opp.Score,
		tags,
		opp.PostedAt,
		opp.Fingerprint,
		string(sourceType),
		skills,
		opp.MatchReason,
		string(opp.Category),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicateOpportunity
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresOpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (opportunity.Row, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, title, description, source, url, score, COALESCE(tags, 'null'),
		        posted_at, discovered_at, fingerprint, COALESCE(source_type, 'automated'),
		        COALESCE(matched_skills, 'null'), COALESCE(match_reason, ''), COALESCE(category, 'other')
		 FROM opportunities WHERE id = $1`,
		id,
	)

	var out opportunity.Row
	var tags, skills []byte
	var sourceType, category string
	err := row.Scan(
		&out.ID, &out.Title, &out.Description, &out.Source, &out.URL, &out.Score,
		&tags, &out.PostedAt, &out.DiscoveredAt, &out.Fingerprint, &sourceType,
		&skills, &out.MatchReason, &category,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return opportunity.Row{}, ErrOpportunityNotFound
		}
		return opportunity.Row{}, err
	}

	out.SourceType = opportunity.SourceType(sourceType)
	out.Category = opportunity.Category(category)
	out.Tags = unmarshalStrings(tags)
	out.MatchedSkills = unmarshalStrings(skills)
	return out, nil
}

func (r *PostgresOpportunityRepository) List(ctx context.Context, filter OpportunityFilter) ([]ListRow, error) {
	var sb strings.Builder
	sb.WriteString(
		`SELECT o.id, o.title, o.description, o.source, o.url, o.score,
		        COALESCE(o.tags, 'null'), o.posted_at, o.discovered_at, o.fingerprint,
		        COALESCE(o.source_type, 'automated'), COALESCE(o.matched_skills, 'null'),
		        COALESCE(o.match_reason, ''), COALESCE(o.category, 'other'),
		        COALESCE(a.status, ''), a.applied_at, COALESCE(a.proposal_text, ''), COALESCE(a.method, '')
		 FROM opportunities o
		 LEFT JOIN LATERAL (
			SELECT status, applied_at, proposal_text, method
			FROM applications
			WHERE opportunity_id = o.id
			ORDER BY created_at DESC
			LIMIT 1
		 ) a ON true
		 WHERE 1=1`)

	args := make([]any, 0, 4)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.MinScore > 0 {
		sb.WriteString(" AND o.score >= " + arg(filter.MinScore))
	}
	if filter.Source != "" {
		sb.WriteString(" AND o.source = " + arg(filter.Source))
	}
	if filter.Status != "" {
		sb.WriteString(" AND a.status = " + arg(string(filter.Status)))
	}
	if filter.ExcludeArchived {
		sb.WriteString(" AND (a.status IS NULL OR a.status NOT IN ('archived', 'old', 'not_useful'))")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	sb.WriteString(" ORDER BY o.discovered_at DESC LIMIT " + arg(limit))

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ListRow, 0)
	for rows.Next() {
		var lr ListRow
		var tags, skills []byte
		var sourceType, category, status, method string
		err := rows.Scan(
			&lr.ID, &lr.Title, &lr.Description, &lr.Source, &lr.URL, &lr.Score,
			&tags, &lr.PostedAt, &lr.DiscoveredAt, &lr.Fingerprint,
			&sourceType, &skills, &lr.MatchReason, &category,
			&status, &lr.AppliedAt, &lr.ProposalText, &method,
		)
		if err != nil {
			return nil, err
		}
		lr.SourceType = opportunity.SourceType(sourceType)
		lr.Category = opportunity.Category(category)
		lr.Tags = unmarshalStrings(tags)
		lr.MatchedSkills = unmarshalStrings(skills)
		lr.Status = opportunity.ApplicationStatus(status)
		lr.Method = opportunity.ApplicationMethod(method)
		out = append(out, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func marshalOrNil(v []string) (any, error) {
	if len(v) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func unmarshalStrings(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
