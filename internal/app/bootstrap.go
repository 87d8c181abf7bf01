package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/KBRglobal/Traviapp-sub001/internal/config"
	"github.com/KBRglobal/Traviapp-sub001/internal/delivery/http/handler"
	"github.com/KBRglobal/Traviapp-sub001/internal/delivery/http/middleware"
	"github.com/KBRglobal/Traviapp-sub001/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the dependency container and the HTTP app around it. The
// returned cleanup closes the container.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware()
	f.Use(errMw.Middleware())
	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(accessMw.Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		handler.NewSearchHandler(c.SearchUC, c.SpellChecker, c.Rewriter, c.Autocomplete),
		handler.NewIndexHandler(c.Indexer, c.Autocomplete),
	)
	registry.Register(f)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
