package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobscout/internal/delivery/http/dto"
	"jobscout/internal/delivery/http/middleware"
	"jobscout/internal/domain/opportunity"
	"jobscout/internal/pkg/response"
	"jobscout/internal/usecase"
)

type ImportHandler struct {
	uc usecase.ImportUsecase
}

func NewImportHandler(uc usecase.ImportUsecase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

func (h *ImportHandler) HandleImport(c fiber.Ctx) error {
	var req dto.ImportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.ImportManual(c.Context(), usecase.ManualImportParams{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Source:      req.Source,
		SourceType:  opportunity.SourceType(req.SourceType),
		Tags:        req.Tags,
	})
	if err != nil {
		return mapOpportunityError(err)
	}

	return response.Success(c, fiber.StatusCreated, "success", toImportResponse(out))
}

func (h *ImportHandler) HandleImportEmail(c fiber.Ctx) error {
	var req dto.EmailImportRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.ImportEmail(c.Context(), usecase.EmailImportParams{
		Subject: req.Subject,
		Body:    req.Body,
		From:    req.From,
		URL:     req.URL,
	})
	if err != nil {
		return mapOpportunityError(err)
	}

	return response.Success(c, fiber.StatusCreated, "success", toImportResponse(out))
}

func toImportResponse(out usecase.ImportResult) dto.ImportResponse {
	return dto.ImportResponse{
		ID:            out.ID,
		Score:         out.Score,
		MatchReason:   out.MatchReason,
		MatchedSkills: emptyIfNil(out.MatchedSkills),
		Category:      string(out.Category),
	}
}
