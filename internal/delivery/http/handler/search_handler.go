package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/KBRglobal/Traviapp-sub001/internal/autocomplete"
	"github.com/KBRglobal/Traviapp-sub001/internal/delivery/http/middleware"
	"github.com/KBRglobal/Traviapp-sub001/internal/pkg/response"
	"github.com/KBRglobal/Traviapp-sub001/internal/search"
	"github.com/KBRglobal/Traviapp-sub001/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SearchHandler struct {
	uc       usecase.SearchUsecase
	spell    *search.SpellChecker
	rewriter *search.Rewriter
	suggest  *autocomplete.Engine
}

func NewSearchHandler(uc usecase.SearchUsecase, spell *search.SpellChecker, rewriter *search.Rewriter, suggest *autocomplete.Engine) *SearchHandler {
	return &SearchHandler{uc: uc, spell: spell, rewriter: rewriter, suggest: suggest}
}

func (h *SearchHandler) HandleSpellCheck(c fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing q parameter", nil, nil)
	}
	return c.JSON(h.spell.Check(c.Context(), q))
}

func (h *SearchHandler) HandleSynonyms(c fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing term parameter", nil, nil)
	}
	locale := c.Query("locale")

	expansion := search.Expand(term, locale)
	return c.JSON(fiber.Map{
		"term":     term,
		"expanded": expansion.Expanded,
		"related":  search.RelatedTerms(term, 10),
	})
}

func (h *SearchHandler) HandleRewrite(c fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing q parameter", nil, nil)
	}
	locale := c.Query("locale")

	rewritten := h.rewriter.Rewrite(c.Context(), q, locale)
	return c.JSON(fiber.Map{
		"original":        rewritten.Original,
		"rewritten":       rewritten.Rewritten,
		"expandedTerms":   rewritten.ExpandedTerms,
		"spellCorrected":  rewritten.SpellCorrected,
		"didYouMean":      rewritten.DidYouMean,
		"language":        rewritten.Language,
		"transformations": rewritten.Transformations,
		"alternatives":    h.rewriter.GenerateAlternatives(c.Context(), q, 5),
	})
}

func (h *SearchHandler) HandleSearch(c fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing q parameter", nil, nil)
	}

	limit, err := parseQueryInt(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
	}
	page, err := parseQueryInt(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid page", nil, err)
	}

	result, err := h.uc.Search(c.Context(), usecase.SearchParams{
		Query:  q,
		Types:  parseTypesQuery(c.Query("type")),
		Locale: c.Query("locale"),
		Limit:  limit,
		Page:   page,
	})
	if err != nil {
		return mapSearchUsecaseError(err)
	}
	return c.JSON(result)
}

func (h *SearchHandler) HandleAnalyze(c fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing q parameter", nil, nil)
	}
	return c.JSON(h.uc.Analyze(c.Context(), q, c.Query("locale")))
}

func (h *SearchHandler) HandleSimilar(c fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("contentId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid content id", nil, err)
	}
	limit, err := parseQueryInt(c, "limit", 5)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
	}

	hits, err := h.uc.Similar(c.Context(), contentID, limit)
	if err != nil {
		return mapSearchUsecaseError(err)
	}
	return c.JSON(fiber.Map{"contentId": contentID, "similar": hits})
}

// HandleAutocomplete always answers with a well-formed (possibly empty) list.
func (h *SearchHandler) HandleAutocomplete(c fiber.Ctx) error {
	q := c.Query("q")
	limit, err := parseQueryInt(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
	}

	suggestions := h.suggest.Suggest(c.Context(), q, autocomplete.SuggestOptions{
		Locale: c.Query("locale"),
		Limit:  limit,
	})
	return c.JSON(fiber.Map{"suggestions": suggestions})
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func parseTypesQuery(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func mapSearchUsecaseError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
