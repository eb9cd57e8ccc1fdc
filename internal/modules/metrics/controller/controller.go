package controller

import (
	"net/http"
	"time"

	"weatherstation-server/internal/modules/metrics/service"
)

type MetricsController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type metricsControllerImpl struct {
	service *service.Service
	now     func() time.Time
}

func NewMetricsController(svc *service.Service) MetricsController {
	return &metricsControllerImpl{service: svc, now: func() time.Time { return time.Now().UTC() }}
}

func (c *metricsControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/metrics", c.handleMetrics)
}
