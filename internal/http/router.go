package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler, jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/signup", handler.Signup)
		r.Post("/users/login", handler.Login)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(jwtSecret))

			r.Get("/stock", handler.ListStock)
			r.Get("/stock/low-stock", handler.LowStock)
			r.Get("/stock/low-stock/export", handler.ExportLowStock)
			r.Get("/stock/{fabricNumber}", handler.GetStock)
			r.Post("/stock/create", handler.CreateStock)
			r.Post("/stock/import", handler.ImportStock)
			r.Put("/stock/add", handler.AddStock)
			r.Put("/stock/update", handler.UpdateStock)
			r.Get("/stock2", handler.ListStore2Stock)

			r.Post("/ship/order", handler.ShipOrder)
			r.Post("/ship/style", handler.ShipStyle)
			r.Post("/ship/bulk", handler.ShipBulk)
			r.Get("/ship/batches/{key}", handler.GetShipBatch)

			r.Get("/relation", handler.ListRelations)
			r.Get("/relation/details", handler.GetRelationDetails)
			r.Post("/relation", handler.CreateRelations)
			r.Post("/relation/import", handler.ImportRelations)

			r.Get("/style-details", handler.ListStyleDetails)
			r.Post("/style-details", handler.ImportStyles)
			r.Post("/average", handler.ImportAverages)

			r.Get("/accessory", handler.ListAccessories)
			r.Put("/accessory/{number}", handler.AdjustAccessory)
			r.Post("/accessory", handler.ImportAccessories)

			r.Get("/purchase-history", handler.PurchaseHistory)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/users", handler.ListUsers)
				r.Put("/users/{id}/role", handler.UpdateUserRole)
				r.Delete("/users/{id}", handler.DeleteUser)
			})
		})
	})

	return r
}
