package routes

import (
	"github.com/KBRglobal/Traviapp-sub001/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	search *handler.SearchHandler
	index  *handler.IndexHandler
}

func NewRegistry(health *handler.HealthHandler, search *handler.SearchHandler, index *handler.IndexHandler) *Registry {
	return &Registry{health: health, search: search, index: index}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.health.HandleHealth)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	s := v1.Group("/search")
	s.Get("/", r.search.HandleSearch)
	s.Get("/spell-check", r.search.HandleSpellCheck)
	s.Get("/synonyms", r.search.HandleSynonyms)
	s.Get("/rewrite", r.search.HandleRewrite)
	s.Get("/analyze", r.search.HandleAnalyze)
	s.Get("/autocomplete", r.search.HandleAutocomplete)
	s.Get("/similar/:contentId", r.search.HandleSimilar)

	s.Post("/index/:contentId", r.index.HandleIndexContent)
	s.Post("/reindex", r.index.HandleReindex)
	s.Post("/suggestions/rebuild", r.index.HandleRebuildSuggestions)
	s.Delete("/index/:contentId", r.index.HandleRemoveFromIndex)
}
