package server

import (
	"encoding/json"
	"hazard-server/internal/domain"
	"hazard-server/internal/engine"
	"hazard-server/pkg/scene"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(r chi.Router) {
	r.Get("/debug/rounds", h.handleRounds)
	r.Get("/debug/registry", h.handleRegistry)
	r.Get("/debug/catalog", h.handleCatalog)
	r.Get("/debug/hub", h.handleHub)
}

// /debug/rounds - активный раунд и последние завершенные
func (h *DebugHandler) handleRounds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Rounds())
}

// /debug/registry - сложность, ожидающий имени результат и все таблицы
func (h *DebugHandler) handleRegistry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Registry.Snapshot())
}

// /debug/hub - подключенные хосты и связь хоста активного раунда
func (h *DebugHandler) handleHub(w http.ResponseWriter, r *http.Request) {
	type HubSummary struct {
		Subscribers     int    `json:"subscribers"`
		ActiveHost      string `json:"active_host,omitempty"`
		ActiveConnected bool   `json:"active_connected"`
	}

	hub := h.Service.Hub
	res := HubSummary{Subscribers: hub.SubscriberCount()}
	if inst := h.Service.ActiveInstance(); inst != nil {
		res.ActiveHost = inst.SessionID
		res.ActiveConnected = hub.HasSubscriber(inst.SessionID)
	}
	writeJSON(w, res)
}

// /debug/catalog - состав каталога и проблемы свойств объектов
func (h *DebugHandler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	type CatalogSummary struct {
		Name        string          `json:"name"`
		Hazards     int             `json:"hazards"`
		Safeties    int             `json:"safeties"`
		Innocuous   int             `json:"innocuous"`
		Groups      int             `json:"groups"`
		SpawnPoints int             `json:"spawn_points"`
		Problems    []scene.Problem `json:"problems"`
	}

	c := h.Service.Catalog
	writeJSON(w, CatalogSummary{
		Name:        c.Name,
		Hazards:     c.Count(domain.CategoryHazard),
		Safeties:    c.Count(domain.CategorySafety),
		Innocuous:   c.Count(domain.CategoryInnocuous),
		Groups:      len(c.Groups),
		SpawnPoints: len(c.SpawnPoints),
		Problems:    c.Check(),
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, нет раундов), возвращаем пустой массив [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
