package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/accountsy/billing-api/internal/application/render"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	RenderUC *render.UseCase
	Log      zerolog.Logger
}

// Router registers the document routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	h := NewPDFHandler(deps.RenderUC)
	app.Post("/create-pdf", h.Create)
	app.Get("/fetch-pdf", h.Fetch)
	app.Post("/send-pdf", h.Send)
}
