package app

import (
	"context"
	"log"
	"time"

	"github.com/KBRglobal/Traviapp-sub001/internal/autocomplete"
	"github.com/KBRglobal/Traviapp-sub001/internal/config"
	"github.com/KBRglobal/Traviapp-sub001/internal/database"
	dbpostgres "github.com/KBRglobal/Traviapp-sub001/internal/database/postgres"
	"github.com/KBRglobal/Traviapp-sub001/internal/database/seeder"
	"github.com/KBRglobal/Traviapp-sub001/internal/indexer"
	"github.com/KBRglobal/Traviapp-sub001/internal/infrastructure/cache"
	"github.com/KBRglobal/Traviapp-sub001/internal/repository"
	"github.com/KBRglobal/Traviapp-sub001/internal/search"
	"github.com/KBRglobal/Traviapp-sub001/internal/usecase"
)

// Container wires every component of the pipeline. Construction fails only
// on a missing database; a missing cache degrades to bypass mode.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis

	Indexer      *indexer.Indexer
	Autocomplete *autocomplete.Engine
	SpellChecker *search.SpellChecker
	Rewriter     *search.Rewriter
	SearchUC     usecase.SearchUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := seeder.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	trigram := seeder.ProbeTrigram(ctx, db, logger)

	redisCache := cache.NewRedis(cfg.Redis, cfg.Search.QueryTimeout, logger)

	contents := repository.NewPostgresContentRepository(db, cfg.Search.QueryTimeout)
	index := repository.NewPostgresIndexRepository(db, cfg.Search.QueryTimeout)
	suggestions := repository.NewPostgresSuggestionRepository(db, trigram, cfg.Search.QueryTimeout)

	spell := search.NewSpellChecker(redisCache, suggestions, cfg.Search.SpellTTL, logger)
	rewriter := search.NewRewriter(spell)

	ix := indexer.New(contents, index, cfg.Search.ReindexWorkers, logger)
	engine := autocomplete.NewEngine(suggestions, index, redisCache, cfg.Search.SuggestTTL, logger)
	searchUC := usecase.NewSearchUsecase(rewriter, index, engine, logger)

	return &Container{
		Config:       cfg,
		DB:           db,
		Cache:        redisCache,
		Indexer:      ix,
		Autocomplete: engine,
		SpellChecker: spell,
		Rewriter:     rewriter,
		SearchUC:     searchUC,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
