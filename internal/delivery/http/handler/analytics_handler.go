package handler

import (
	"github.com/gofiber/fiber/v3"

	"jobscout/internal/delivery/http/dto"
	"jobscout/internal/delivery/http/middleware"
	"jobscout/internal/pkg/response"
	"jobscout/internal/usecase"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) HandleOverview(c fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.AnalyticsOverview{
		NewToday:     out.NewToday,
		TotalApplied: out.TotalApplied,
		TotalReplied: out.TotalReplied,
		ResponseRate: out.ResponseRate,
	})
}

func (h *AnalyticsHandler) HandleFunnel(c fiber.Ctx) error {
	out, err := h.uc.Funnel(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.AnalyticsFunnel{
		Discovered: out.Discovered,
		Viewed:     out.Viewed,
		Applied:    out.Applied,
		Replied:    out.Replied,
	})
}

func (h *AnalyticsHandler) HandleSources(c fiber.Ctx) error {
	stats, err := h.uc.Sources(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	out := make([]dto.SourceStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.SourceStat{
			Source:     s.Source,
			SourceType: s.SourceType,
			Total:      s.Total,
			AvgScore:   s.AvgScore,
			Applied:    s.Applied,
		})
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *AnalyticsHandler) HandleCategories(c fiber.Ctx) error {
	stats, err := h.uc.Categories(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	out := make([]dto.CategoryStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.CategoryStat{
			Category: s.Category,
			Total:    s.Total,
			AvgScore: s.AvgScore,
			Applied:  s.Applied,
		})
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}
