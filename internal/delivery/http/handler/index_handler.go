package handler

import (
	"github.com/KBRglobal/Traviapp-sub001/internal/autocomplete"
	"github.com/KBRglobal/Traviapp-sub001/internal/delivery/http/middleware"
	"github.com/KBRglobal/Traviapp-sub001/internal/indexer"
	"github.com/KBRglobal/Traviapp-sub001/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type IndexHandler struct {
	indexer *indexer.Indexer
	suggest *autocomplete.Engine
}

func NewIndexHandler(ix *indexer.Indexer, suggest *autocomplete.Engine) *IndexHandler {
	return &IndexHandler{indexer: ix, suggest: suggest}
}

func (h *IndexHandler) HandleIndexContent(c fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("contentId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid content id", nil, err)
	}

	if err := h.indexer.IndexContent(c.Context(), contentID); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"contentId": contentID,
		"message":   "content indexed",
	})
}

func (h *IndexHandler) HandleReindex(c fiber.Ctx) error {
	res, err := h.indexer.ReindexAll(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"indexed": res.Indexed,
		"errors":  res.Errors,
		"message": "reindex complete",
	})
}

func (h *IndexHandler) HandleRemoveFromIndex(c fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("contentId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid content id", nil, err)
	}

	if err := h.indexer.RemoveFromIndex(c.Context(), contentID); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"contentId": contentID,
		"message":   "content removed from index",
	})
}

// HandleRebuildSuggestions regenerates the autocomplete suggestion table from
// the current index.
func (h *IndexHandler) HandleRebuildSuggestions(c fiber.Ctx) error {
	if err := h.suggest.RebuildIndex(c.Context()); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "suggestions rebuilt",
	})
}
