package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobscout/internal/delivery/http/dto"
	"jobscout/internal/delivery/http/middleware"
	"jobscout/internal/domain/opportunity"
	"jobscout/internal/pkg/response"
	"jobscout/internal/repository"
	"jobscout/internal/usecase"
)

type OpportunityHandler struct {
	uc usecase.OpportunityUsecase
}

func NewOpportunityHandler(uc usecase.OpportunityUsecase) *OpportunityHandler {
	return &OpportunityHandler{uc: uc}
}

func (h *OpportunityHandler) HandleList(c fiber.Ctx) error {
	minScore, err := parseQueryIntStrict(c, "minScore", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	excludeArchived := c.Query("excludeArchived", "true") == "true"

	items, err := h.uc.List(c.Context(), usecase.ListParams{
		MinScore:        minScore,
		Source:          c.Query("source"),
		Status:          c.Query("status"),
		ExcludeArchived: excludeArchived,
		Limit:           limit,
	})
	if err != nil {
		return mapOpportunityError(err)
	}

	out := make([]dto.OpportunityListItem, 0, len(items))
	for _, it := range items {
		out = append(out, toListItem(it))
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *OpportunityHandler) HandleGet(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid opportunity id", nil, err)
	}

	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapOpportunityError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", toDetail(detail))
}

func (h *OpportunityHandler) HandleApply(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid opportunity id", nil, err)
	}

	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Status == "" {
		req.Status = string(opportunity.StatusApplied)
	}

	out, err := h.uc.UpdateStatus(
		c.Context(),
		id,
		opportunity.ApplicationStatus(req.Status),
		opportunity.ApplicationMethod(req.Method),
		req.ProposalText,
	)
	if err != nil {
		return mapOpportunityError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.ApplyResponse{
		Status:       string(out.Status),
		ProposalText: out.ProposalText,
	})
}

func mapOpportunityError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotApplicable):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot apply in the current status. Change the status first.", nil, err)
	case errors.Is(err, repository.ErrOpportunityNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Opportunity not found", nil, err)
	case errors.Is(err, repository.ErrDuplicateOpportunity):
		return middleware.NewAppError(fiber.StatusConflict, "Opportunity already exists", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}

func toListItem(it repository.ListRow) dto.OpportunityListItem {
	out := dto.OpportunityListItem{
		ID:            it.ID,
		Title:         it.Title,
		Description:   it.Description,
		Source:        it.Source,
		URL:           it.URL,
		Score:         it.Score,
		Tags:          emptyIfNil(it.Tags),
		PostedAt:      formatTimePtr(it.PostedAt),
		DiscoveredAt:  it.DiscoveredAt.UTC().Format(time.RFC3339),
		SourceType:    string(it.SourceType),
		MatchedSkills: emptyIfNil(it.MatchedSkills),
		MatchReason:   it.MatchReason,
		Category:      string(it.Category),
	}
	if it.Status != "" {
		s := string(it.Status)
		out.Status = &s
		out.AppliedAt = formatTimePtr(it.AppliedAt)
		if it.ProposalText != "" {
			p := it.ProposalText
			out.ProposalText = &p
		}
		m := string(it.Method)
		out.Method = &m
	}
	return out
}

func toDetail(d usecase.Detail) dto.OpportunityDetail {
	out := dto.OpportunityDetail{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Source:        d.Source,
		URL:           d.URL,
		Score:         d.Score,
		Tags:          emptyIfNil(d.Tags),
		PostedAt:      formatTimePtr(d.PostedAt),
		DiscoveredAt:  d.DiscoveredAt.UTC().Format(time.RFC3339),
		SourceType:    string(d.SourceType),
		MatchedSkills: emptyIfNil(d.MatchedSkills),
		MatchReason:   d.MatchReason,
		Category:      string(d.Category),
	}
	if d.Application != nil {
		out.Application = &dto.ApplicationSummary{
			Status:       string(d.Application.Status),
			AppliedAt:    formatTimePtr(d.Application.AppliedAt),
			ProposalText: d.Application.ProposalText,
			Method:       string(d.Application.Method),
		}
	}
	return out
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
