package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobscout/internal/delivery/http/dto"
	"jobscout/internal/delivery/http/middleware"
	"jobscout/internal/discovery"
	"jobscout/internal/domain/opportunity"
	"jobscout/internal/pkg/response"
)

type discoveryRunner interface {
	Run(ctx context.Context) ([]opportunity.Scored, error)
}

type DiscoveryHandler struct {
	service discoveryRunner
}

func NewDiscoveryHandler(service discoveryRunner) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

// HandleRun triggers a discovery cycle synchronously and reports how many
// opportunities it persisted. A cycle already in flight answers 409.
func (h *DiscoveryHandler) HandleRun(c fiber.Ctx) error {
	persisted, err := h.service.Run(c.Context())
	if err != nil {
		if errors.Is(err, discovery.ErrCycleRunning) {
			return middleware.NewAppError(fiber.StatusConflict, "Discovery cycle already running", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.DiscoveryRunResponse{
		Discovered: len(persisted),
	})
}
