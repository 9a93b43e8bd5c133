package handlers

import (
	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/services"
	"net/http"
)

// Algorithms lists the routing algorithms a client may request.
func Algorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.ListAlgorithmsResponse{}
	for _, a := range services.Algorithms() {
		res.Algorithms = append(res.Algorithms, dto.AlgorithmInfo{
			Name:        string(a.Name()),
			Description: services.Describe(a.Name()),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
