package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemboard/pkg/config"
	"github.com/ghuser/itemboard/services/item/application/handlers"
	appsvcs "github.com/ghuser/itemboard/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
func ItemRoutes(r chi.Router, svcs *appsvcs.Services, cfg *config.Config) {
	isProduction := cfg.Environment == config.EnvProduction
	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs, isProduction).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs, isProduction).Execute)
		})
	})
}
