package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"weatherstation-server/internal/config"
	"weatherstation-server/internal/modules/metrics/controller"
	"weatherstation-server/internal/modules/metrics/repository"
	"weatherstation-server/internal/modules/metrics/service"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, cfg config.Config) {
	metricsRepository := repository.NewRepository(db)
	metricsService := service.NewService(
		metricsRepository,
		time.Duration(cfg.StationTZOffsetHours)*time.Hour,
		cfg.StaleAfter,
	)
	metricsController := controller.NewMetricsController(metricsService)
	metricsController.RegisterRoutes(mux)
}
