package api

import "net/http"

type RootResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// RootHandler reports that the service is operational.
func (a *API) RootHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, RootResponse{
		Message:   ServiceMessage,
		Status:    "operational",
		Timestamp: formatTimestamp(a.now()),
		Version:   ServiceVersion,
	})
}
