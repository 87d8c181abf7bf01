package handler

import (
	"context"

	"github.com/KBRglobal/Traviapp-sub001/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	cache pinger
}

func NewHealthHandler(db, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	dbStatus := "ok"
	if h.db == nil || h.db.Ping(c.Context()) != nil {
		dbStatus = "down"
	}
	cacheStatus := "ok"
	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		cacheStatus = "degraded"
	}

	status := fiber.StatusOK
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, response.MessageOK, fiber.Map{
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
