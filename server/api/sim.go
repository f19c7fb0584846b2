package api

import (
	"net/http"

	"github.com/automoto/tilecollide/server/core"
	"github.com/go-chi/chi/v5"
)

// SimHandler serves the state of a running simulation.
type SimHandler struct {
	server *core.Server
}

type simResponse struct {
	Level   string                `json:"level"`
	Ticks   uint64                `json:"ticks"`
	Walkers []core.WalkerSnapshot `json:"walkers"`
}

func NewSimHandler(server *core.Server) *SimHandler {
	return &SimHandler{server: server}
}

func (h *SimHandler) Routes(r chi.Router) {
	r.Get("/entities", h.Entities)
}

func (h *SimHandler) Entities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, simResponse{
		Level:   h.server.Level().Name,
		Ticks:   h.server.Ticks(),
		Walkers: h.server.Walkers(),
	})
}
