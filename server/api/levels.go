package api

import (
	"encoding/json"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/automoto/tilecollide/server/core"
	"github.com/go-chi/chi/v5"
)

// LevelHandler serves collision data of the loaded levels.
type LevelHandler struct {
	levels map[string]*core.ServerLevel
	names  []string
}

type levelSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MapWidth  int    `json:"mapWidth"`
	MapHeight int    `json:"mapHeight"`
}

type levelInfo struct {
	levelSummary
	TileWidth    float64 `json:"tileWidth"`
	TileHeight   float64 `json:"tileHeight"`
	AnchorOffset float64 `json:"anchorOffset"`
	SolidTiles   int     `json:"solidTiles"`
	SpawnPoints  int     `json:"spawnPoints"`
}

type collideResponse struct {
	TileX     int  `json:"tileX"`
	TileY     int  `json:"tileY"`
	InBounds  bool `json:"inBounds"`
	Colliding bool `json:"colliding"`
}

// NewLevelHandler serves levels, listed in the order of names.
func NewLevelHandler(levels map[string]*core.ServerLevel, names []string) *LevelHandler {
	return &LevelHandler{levels: levels, names: names}
}

func (h *LevelHandler) Routes(r chi.Router) {
	r.Get("/levels", h.List)
	r.Route("/levels/{name}", func(sub chi.Router) {
		sub.Get("/", h.Get)
		sub.Get("/collides", h.Collides)
		sub.Get("/grid", h.Grid)
		sub.Get("/grid.png", h.GridPNG)
	})
}

func (h *LevelHandler) List(w http.ResponseWriter, _ *http.Request) {
	out := make([]levelSummary, 0, len(h.names))
	for _, name := range h.names {
		out = append(out, summarize(h.levels[name]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *LevelHandler) Get(w http.ResponseWriter, r *http.Request) {
	level, ok := h.level(w, r)
	if !ok {
		return
	}

	tw, th := level.Collision.TileSize()
	writeJSON(w, http.StatusOK, levelInfo{
		levelSummary: summarize(level),
		TileWidth:    tw,
		TileHeight:   th,
		AnchorOffset: level.Collision.AnchorOffset(),
		SolidTiles:   level.Collision.Grid().SolidCount(),
		SpawnPoints:  len(level.SpawnPoints),
	})
}

func (h *LevelHandler) Collides(w http.ResponseWriter, r *http.Request) {
	level, ok := h.level(w, r)
	if !ok {
		return
	}

	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be numbers")
		return
	}

	tileX, tileY, inBounds := level.Collision.TileAt(x, y)
	writeJSON(w, http.StatusOK, collideResponse{
		TileX:     tileX,
		TileY:     tileY,
		InBounds:  inBounds,
		Colliding: level.Collision.IsColliding(x, y),
	})
}

func (h *LevelHandler) Grid(w http.ResponseWriter, r *http.Request) {
	level, ok := h.level(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(level.Collision.Grid().String()))
}

func (h *LevelHandler) GridPNG(w http.ResponseWriter, r *http.Request) {
	level, ok := h.level(w, r)
	if !ok {
		return
	}
	tw, th := level.Collision.TileSize()
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, level.Collision.Grid().Image(int(tw), int(th))); err != nil {
		log.Printf("[api] png encode error: %v", err)
	}
}

func (h *LevelHandler) level(w http.ResponseWriter, r *http.Request) (*core.ServerLevel, bool) {
	level, ok := h.levels[chi.URLParam(r, "name")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown level")
		return nil, false
	}
	return level, true
}

func summarize(level *core.ServerLevel) levelSummary {
	grid := level.Collision.Grid()
	return levelSummary{
		ID:        level.ID,
		Name:      level.Name,
		Width:     grid.Cols(),
		Height:    grid.Rows(),
		MapWidth:  level.MapWidth,
		MapHeight: level.MapHeight,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
