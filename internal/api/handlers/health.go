package handlers

import (
	"fleet-route-service/internal/services"
	"net/http"
)

type healthResponse struct {
	Status        string `json:"status"`
	Algorithms    int    `json:"algorithms"`
	RoadDistances bool   `json:"roadDistances"`
	RunStorage    bool   `json:"runStorage"`
}

// Health reports liveness and which optional adapters are wired in.
func (h *OptimizeHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:        "ok",
		Algorithms:    len(services.Algorithms()),
		RoadDistances: h.Matrix != nil,
		RunStorage:    h.Runs != nil,
	})
}
