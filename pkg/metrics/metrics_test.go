package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/pos_print/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	t.Helper()
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("sales"))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("sales"))

	metrics.KafkaMessagesConsumed.WithLabelValues("sales").Inc()
	metrics.KafkaMessagesFailed.WithLabelValues("sales").Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues("sales")); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues("sales")); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestPrintJobs_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	localBefore := testutil.ToFloat64(metrics.PrintJobs.WithLabelValues("kitchen", "local"))
	networkBefore := testutil.ToFloat64(metrics.PrintJobs.WithLabelValues("kitchen", "network"))

	metrics.PrintJobs.WithLabelValues("kitchen", "local").Inc()
	metrics.PrintJobs.WithLabelValues("kitchen", "local").Inc()

	if got := testutil.ToFloat64(metrics.PrintJobs.WithLabelValues("kitchen", "local")); got != localBefore+2 {
		t.Fatalf("PrintJobs(kitchen,local): got=%v want=%v", got, localBefore+2)
	}
	if got := testutil.ToFloat64(metrics.PrintJobs.WithLabelValues("kitchen", "network")); got != networkBefore {
		t.Fatalf("PrintJobs(kitchen,network): got=%v want=%v", got, networkBefore)
	}
}

func TestConfigDevices_GaugeSet(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.ConfigDevices)

	metrics.ConfigDevices.Set(cur + 3)
	if got := testutil.ToFloat64(metrics.ConfigDevices); got != cur+3 {
		t.Fatalf("ConfigDevices after +3: got=%v want=%v", got, cur+3)
	}

	metrics.ConfigDevices.Set(cur) // вернуть как было
	if got := testutil.ToFloat64(metrics.ConfigDevices); got != cur {
		t.Fatalf("ConfigDevices restore: got=%v want=%v", got, cur)
	}
}
