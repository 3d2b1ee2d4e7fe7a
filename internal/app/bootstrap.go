package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"jobscout/internal/delivery/http/handler"
	"jobscout/internal/delivery/http/middleware"
	"jobscout/internal/delivery/http/routes"
	"jobscout/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap assembles the container, fiber app and background workers. The
// returned cleanup stops the scheduler and closes every connection.
func Bootstrap(c *Container) (*App, func() error, error) {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	go c.Hub.Run()

	if err := c.Scheduler.Start(context.Background()); err != nil {
		return nil, nil, err
	}

	cleanup := func() error {
		c.Scheduler.Stop()
		return c.Close()
	}

	return &App{Fiber: f, Container: c}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	if origin := c.Config.App.CORSOrigin; origin != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Split(origin, ","),
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "X-Request-ID"},
		}))
	}
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewOpportunityHandler(c.OpportunityUC),
		handler.NewAnalyticsHandler(c.AnalyticsUC),
		handler.NewImportHandler(c.ImportUC),
		handler.NewDiscoveryHandler(c.Discovery),
		ws.NewHandler(c.Hub, c.Logger),
	)
	registry.Register(app)
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
