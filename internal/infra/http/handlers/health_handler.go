package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const serviceName = "callflex-webhooks"

type Pinger interface {
	Ping(ctx context.Context) error
}

type BrokerConnection interface {
	IsClosed() bool
}

type HealthHandler struct {
	Storage   Pinger
	Broker    BrokerConnection
	Mail      bool
	Version   string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler takes nil for dependencies that are not configured.
func NewHealthHandler(storage Pinger, broker BrokerConnection, mailConfigured bool) *HealthHandler {
	return &HealthHandler{
		Storage:   storage,
		Broker:    broker,
		Mail:      mailConfigured,
		Version:   "1.0.0",
		StartTime: time.Now(),
	}
}

// Home answers GET / and reports whether storage was built at startup.
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "running",
		"service":           serviceName,
		"storage_connected": h.Storage != nil,
	})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready probes every configured dependency.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.Storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := h.Storage.Ping(ctx); err != nil {
			deps["storage"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["storage"] = "healthy"
		}
	} else {
		deps["storage"] = "not configured"
	}

	if h.Broker != nil {
		if h.Broker.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.Mail {
		deps["mail"] = "configured"
	} else {
		deps["mail"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}

	respondWithJSON(w, code, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
