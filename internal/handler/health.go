package handler

import "net/http"

type HealthHandler struct {
	appName string
	version string
}

func NewHealthHandler(appName, version string) *HealthHandler {
	return &HealthHandler{appName: appName, version: version}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": h.appName + " API",
		"version": h.version,
	})
}

// Up handles GET /up for load balancer health checks.
func (h *HealthHandler) Up(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
