package controllers

import (
	"context"
	"net/http"
	"time"

	"participationletters/internal/delivery/http/helpers"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	DB Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{DB: db}
}

// StatusResponse is the body of the health endpoints.
type StatusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} controllers.StatusResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness probe
// @Description Reports ready when the database answers a ping within one second.
// @Tags health
// @Produce json
// @Success 200 {object} controllers.StatusResponse
// @Failure 503 {object} controllers.StatusResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	if err := c.DB.PingContext(ctx); err != nil {
		helpers.WriteJSON(w, http.StatusServiceUnavailable, StatusResponse{Status: "not_ready", Error: err.Error()})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}
