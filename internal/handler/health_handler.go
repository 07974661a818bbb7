package handler

import (
	"context"
	"net/http"
	"time"

	"friendchat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health handles GET /health. Every registered check must pass.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(name+" unavailable", "UNAVAILABLE"))
			return
		}
	}
	c.JSON(http.StatusOK, httpdto.HealthResponse{Status: "ok"})
}
