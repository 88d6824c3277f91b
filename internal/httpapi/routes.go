package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mufahq/mufa-backend/internal/hub"
	"github.com/mufahq/mufa-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub) http.Handler {
	r := chi.NewRouter()

	r.Post("/groups", CreateGroup(h))
	r.Get("/groups/{code}", GetGroup(h))
	r.Post("/groups/{code}/commands", PostCommand(h))
	r.Get("/ws", ws.Handler(h))
	r.Get("/healthz", Healthz)
	r.Handle("/metrics", promhttp.Handler())
	return r
}
