package api

import (
	"net/http"
)

// handleHealth responds with 200 OK and per-service status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"topcoins":     "unknown",
		"simpleprice":  "unknown",
		"pricehistory": "unknown",
	}

	if s.topService.Healthy() {
		services["topcoins"] = "up"
	}

	if s.priceService.Healthy() {
		services["simpleprice"] = "up"
	}

	if s.historyService.Healthy() {
		services["pricehistory"] = "up"
	}

	status := map[string]interface{}{
		"status":   "ok",
		"services": services,
	}

	s.sendJSONResponse(w, status)
}
