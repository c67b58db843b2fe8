package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	// PrintJobs — итог по направлению печати.
	PrintJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "print_jobs_total",
			Help: "Print destinations by outcome",
		},
		[]string{"destination", "outcome"}, // kitchen|receipt × network|local|skipped|failed
	)
	NetworkAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "print_network_attempts_total",
			Help: "Network delivery attempts to printers",
		},
		[]string{"outcome"}, // delivered|timeout|refused
	)
	NetworkAttemptDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "print_network_attempt_duration_seconds",
			Help:    "Duration of a raced network delivery attempt",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 2.5},
		},
	)
)

var (
	ConfigCacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "print_config_cache_operations_total",
			Help: "Printer configuration cache operations",
		},
		[]string{"op"}, // hit|refresh|stale|empty|invalidate
	)
	ConfigDevices = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "print_config_devices",
			Help: "Number of active printer devices in the current snapshot",
		},
	)
)

// MustRegister — регистрирует метрики в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	collectors := []prometheus.Collector{
		KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
		PrintJobs, NetworkAttempts, NetworkAttemptDuration,
		ConfigCacheOps, ConfigDevices,
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(err)
		}
	}
}
