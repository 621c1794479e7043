// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client      *mongo.Client
	ProviderURL string
	Log         *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(client *mongo.Client, providerURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Client:      client,
		ProviderURL: providerURL,
		Log:         logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Provider string `json:"provider,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "provider":"reachable" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
//
// The provider check is informational; an unreachable provider degrades the
// dashboard but does not make this service unhealthy.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	if h.ProviderURL != "" {
		resp.Provider = "reachable"
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.ProviderURL, nil)
		if err == nil {
			res, err := http.DefaultClient.Do(req)
			if err != nil {
				h.Log.Warn("health-check: provider unreachable", zap.Error(err))
				resp.Provider = "unreachable"
			} else {
				_ = res.Body.Close()
			}
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
