package http

import (
	"net/http"

	"github.com/go-chi/render"
)

// MetricsHandler exposes the Prometheus registry, or a JSON notice when
// metrics are disabled.
type MetricsHandler struct {
	exporter http.Handler
}

// NewMetricsHandler creates a new metrics handler. exporter may be nil.
func NewMetricsHandler(exporter http.Handler) *MetricsHandler {
	return &MetricsHandler{exporter: exporter}
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]interface{}{
			"status":  "disabled",
			"message": "metrics are disabled; set FUNDING_TELEMETRY_METRICS_ENABLED=true",
		})
		return
	}
	h.exporter.ServeHTTP(w, r)
}
