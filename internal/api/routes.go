package api

import (
	"github.com/go-chi/chi/v5"
)

// MessagesBasePath is the prefix of every message endpoint.
const MessagesBasePath = "/api/mensagens"

// RegisterRoutes mounts the route index and the message endpoints on r.
func (h *MessageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)

	r.Route(MessagesBasePath, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Replace)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
