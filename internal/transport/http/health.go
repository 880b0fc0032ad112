package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DBPinger interface {
	PingContext(ctx context.Context) error
}

type CachePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB    DBPinger
	Cache CachePinger // Optional, can be nil
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok", "db": "ok", "cache": "disabled"}

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["db"] = err.Error()
		}
	}
	if h.Cache != nil {
		body["cache"] = "ok"
		if err := h.Cache.Ping(ctx); err != nil {
			body["cache"] = err.Error()
		}
	}
	c.JSON(status, body)
}
