package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue returns the value of the counter name whose labels include
// labels, read through the registry.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			matched := 0
			for _, lp := range m.GetLabel() {
				if v, ok := labels[lp.GetName()]; ok && v == lp.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Errorf("metric %s%v not found", name, labels)
	return 0
}

func TestMetricsRecording(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.CacheEvicted()
	m.Resolve("package", nil)
	m.Resolve("relative", errors.New("boom"))
	m.Operation("render", time.Now(), nil)
	m.Operation("rewrite", time.Now(), errors.New("boom"))
	m.AssetCollected()

	tests := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"test_resolver_cache_hits_total", nil, 2},
		{"test_resolver_cache_misses_total", nil, 1},
		{"test_resolver_cache_evictions_total", nil, 1},
		{"test_resolves_total", map[string]string{"kind": "package", "status": "success"}, 1},
		{"test_resolves_total", map[string]string{"kind": "relative", "status": "error"}, 1},
		{"test_operations_total", map[string]string{"op": "render", "status": "success"}, 1},
		{"test_operations_total", map[string]string{"op": "rewrite", "status": "error"}, 1},
		{"test_assets_collected_total", nil, 1},
	}
	for _, tt := range tests {
		if got := counterValue(t, reg, tt.name, tt.labels); got != tt.want {
			t.Errorf("%s%v = %v, want %v", tt.name, tt.labels, got, tt.want)
		}
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.CacheHit()
	m.CacheMiss()
	m.CacheEvicted()
	m.Resolve("package", nil)
	m.Operation("render", time.Now(), nil)
	m.AssetCollected()
}

func TestDefaultRegistryShared(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	if a != b {
		t.Error("default-registry metrics should be shared")
	}
}

func TestSpanHelpers(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test")
	if ctx == nil || span == nil {
		t.Fatal("StartSpan() returned nil")
	}
	EndSpan(span, errors.New("boom"))

	_, span = StartSpan(context.Background(), "test-ok")
	EndSpan(span, nil)
}
