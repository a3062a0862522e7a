package server

import (
	"encoding/json"
	"net/http"

	"courier-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
}

// /debug/sessions - список активных сессий и их состояние
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	type SessionSummary struct {
		ID      string `json:"id"`
		Width   int    `json:"width"`
		Height  int    `json:"height"`
		Tick    int    `json:"tick"`
		Outcome string `json:"outcome"`
		Events  int    `json:"events"`
	}

	var summary []SessionSummary
	h.Service.ForEach(func(inst *engine.Instance) {
		summary = append(summary, SessionSummary{
			ID:      inst.ID,
			Width:   inst.Grid.Width,
			Height:  inst.Grid.Height,
			Tick:    inst.Tick,
			Outcome: string(inst.Outcome),
			Events:  len(inst.Events),
		})
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}
