package api

import (
	"net/http"
)

const HealthyLabel = "✅ Healthy"

type StatusResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler is the liveness check. It never looks at dependencies.
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteText(w, http.StatusOK, "OK")
}

// StatusHandler reports database connectivity. A disconnected database is
// reported in the body; the request itself still succeeds.
func (a *API) StatusHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, StatusResponse{
		Status:    HealthyLabel,
		Database:  a.state.Load().DatabaseLabel(),
		Timestamp: formatTimestamp(a.now()),
	})
}
