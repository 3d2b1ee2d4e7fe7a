package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"jobscout/internal/pkg/response"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if h.db == nil || h.db.Ping(c.Context()) != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	return response.Success(c, fiber.StatusOK, status, fiber.Map{
		"database": dbStatus,
	})
}
