package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clearlend/loanclear/metrics"
	"github.com/clearlend/loanclear/utils/env"
	"github.com/clearlend/loanclear/utils/log"
)

func engineMetricsHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(metrics.GetEngineMetrics())
}

func performanceMetricsHandler(w http.ResponseWriter, r *http.Request) {
	perfMetrics, err := metrics.GetPerformanceMetrics()
	if err != nil {
		log.Error("failed to retrieve performance metrics", "error", err)
		return
	}

	json.NewEncoder(w).Encode(perfMetrics)
}

// Serve the loanclear metrics endpoint
func Serve() error {
	port := env.GetVar("LOANCLEAR_METRICS_PORT")
	addr := ":" + port

	log.Info("start serving metrics endpoint")

	router := http.NewServeMux()
	router.HandleFunc("/metrics/engine", engineMetricsHandler)
	router.HandleFunc("/metrics/performance", performanceMetricsHandler)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	return server.ListenAndServe()
}
