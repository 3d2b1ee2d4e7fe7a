package routes

import (
	"github.com/gofiber/fiber/v3"

	"jobscout/internal/delivery/http/handler"
	"jobscout/internal/ws"
)

type Registry struct {
	health        *handler.HealthHandler
	opportunities *handler.OpportunityHandler
	analytics     *handler.AnalyticsHandler
	imports       *handler.ImportHandler
	discovery     *handler.DiscoveryHandler
	wsHandler     *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	opportunities *handler.OpportunityHandler,
	analytics *handler.AnalyticsHandler,
	imports *handler.ImportHandler,
	discovery *handler.DiscoveryHandler,
	wsHandler *ws.Handler,
) *Registry {
	return &Registry{
		health:        health,
		opportunities: opportunities,
		analytics:     analytics,
		imports:       imports,
		discovery:     discovery,
		wsHandler:     wsHandler,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.health.HandleHealth)
	app.Get("/ws", r.wsHandler.HandleOpportunitiesWS)

	api := app.Group("/api")
	api.Post("/discover", r.discovery.HandleRun)

	opp := api.Group("/opportunities")
	opp.Get("/", r.opportunities.HandleList)

	// Fixed paths go before the :id wildcard.
	opp.Get("/analytics/overview", r.analytics.HandleOverview)
	opp.Get("/analytics/funnel", r.analytics.HandleFunnel)
	opp.Get("/analytics/sources", r.analytics.HandleSources)
	opp.Get("/analytics/categories", r.analytics.HandleCategories)
	opp.Post("/import", r.imports.HandleImport)
	opp.Post("/import/email", r.imports.HandleImportEmail)

	opp.Get("/:id", r.opportunities.HandleGet)
	opp.Post("/:id/apply", r.opportunities.HandleApply)
}
