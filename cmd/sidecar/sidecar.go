package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/clearlend/loanclear/metrics"
	"github.com/clearlend/loanclear/utils/ddworker"
	"github.com/clearlend/loanclear/utils/log"
)

const engineTag = "engine"

var (
	port = func() (p string) {
		p = os.Getenv("LOANCLEAR_METRICS_PORT")
		if p == "" {
			p = "7777"
		}
		return
	}()
)

func metricsHandler(dd *statsd.Client) error {

	// engine health metrics
	{
		engMetrics, err := getEngineMetrics()
		if err != nil {
			return err
		}

		dd.Gauge("integrity_violations", float64(engMetrics.IntegrityViolations), []string{engineTag}, 1)
		dd.Gauge("share_sum_drifts", float64(engMetrics.ShareSumDrifts), []string{engineTag}, 1)
		dd.Gauge("trades_approved", float64(engMetrics.TradesApproved), []string{engineTag}, 1)
		dd.Gauge("distributions", float64(engMetrics.Distributions), []string{engineTag}, 1)

		if engMetrics.IntegrityViolations > 0 {
			dd.SimpleEvent("integrity violation",
				fmt.Sprintf("%v distribution integrity violations recorded", engMetrics.IntegrityViolations))
		}
		if engMetrics.ShareSumDrifts > 0 {
			dd.SimpleEvent("share sum drift",
				fmt.Sprintf("%v share sum drifts recorded", engMetrics.ShareSumDrifts))
		}
	}

	// performance metrics
	{
		perfMetrics, err := getPerformanceMetrics()
		if err != nil {
			return err
		}

		dd.Gauge("cpu_usage", perfMetrics.CPUUsagePercent, nil, 1)
		dd.Gauge("mem_usage", perfMetrics.MemoryUsagePercent, nil, 1)
		dd.Count("goroutines", perfMetrics.GoRoutines, nil, 1)
	}

	return nil
}

func getEngineMetrics() (*metrics.EngineMetrics, error) {
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%v/metrics/engine", port))
	if err != nil {
		return nil, err
	}

	m := &metrics.EngineMetrics{}

	if err := json.NewDecoder(resp.Body).Decode(m); err != nil {
		return nil, fmt.Errorf("failed to parse engine metrics %v", err)
	}

	return m, nil
}

func getPerformanceMetrics() (*metrics.PerformanceMetrics, error) {
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%v/metrics/performance", port))
	if err != nil {
		return nil, err
	}

	m := &metrics.PerformanceMetrics{}

	if err := json.NewDecoder(resp.Body).Decode(m); err != nil {
		return nil, fmt.Errorf("failed to parse performance metrics %v", err)
	}

	return m, nil
}

func init() {
	ddworker.RegisterHandler(metricsHandler, "metrics_handler", time.Second*10)
	ddworker.SetNamespace("loanclear.")
}

func main() {
	log.Info("running loanclear sidecar container")
	ddworker.RunWorker()
}
