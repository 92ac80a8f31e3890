package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewWithRegistry_Independent tests that separate registries don't collide
func TestNewWithRegistry_Independent(t *testing.T) {
	m1 := NewWithRegistry(prometheus.NewRegistry())
	m2 := NewWithRegistry(prometheus.NewRegistry())

	m1.PostcodeChecksTotal.WithLabelValues("allowed").Inc()

	if got := testutil.ToFloat64(m1.PostcodeChecksTotal.WithLabelValues("allowed")); got != 1 {
		t.Errorf("expected 1 allowed check, got %v", got)
	}
	if got := testutil.ToFloat64(m2.PostcodeChecksTotal.WithLabelValues("allowed")); got != 0 {
		t.Errorf("expected second registry untouched, got %v", got)
	}
}

// TestNewWithRegistry_Registered tests that collectors are exposed by the registry
func TestNewWithRegistry_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.PostcodeLookupsTotal.WithLabelValues("found").Inc()
	m.SettingsOperationsTotal.WithLabelValues("memory", "get", "ok").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, want := range []string{"postcode_lookups_total", "settings_store_operations_total"} {
		if !names[want] {
			t.Errorf("expected metric %s to be registered", want)
		}
	}
}
