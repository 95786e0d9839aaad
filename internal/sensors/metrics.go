package sensors

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	samplesRead = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lsm9ds1",
		Name:      "samples_read_total",
		Help:      "Number of complete IMU samples read.",
	})
	busErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lsm9ds1",
		Name:      "bus_errors_total",
		Help:      "Number of failed bus transactions by operation.",
	}, []string{"op"})
	initCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lsm9ds1",
		Name:      "init_total",
		Help:      "Number of successful device initializations.",
	})
	dieTemperature = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lsm9ds1",
		Name:      "temperature_celsius",
		Help:      "Last die temperature reading.",
	})
)

func countError(op string, err error) error {
	if err != nil {
		busErrors.WithLabelValues(op).Inc()
	}
	return err
}
