package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry_RegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	r.StreamOperations.WithLabelValues("read", "buffer", "t").Inc()
	r.StreamErrors.WithLabelValues("read", "resource", "t", "closed").Inc()
	r.StreamDuration.WithLabelValues("read", "resource", "t").Observe(0.01)
	r.StreamBytesRead.WithLabelValues("buffer", "t").Add(10)
	r.StreamBytesWritten.WithLabelValues("buffer", "t").Add(10)
	r.StreamLength.WithLabelValues("buffer", "t").Set(5)
	r.StreamPipes.WithLabelValues("buffer", "t").Inc()
	r.StreamCloses.WithLabelValues("buffer", "t").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 8 {
		t.Fatalf("got %d metric families, want 8", len(families))
	}
}

func TestNewRegistry_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewRegistry(reg)

	defer func() {
		if recover() == nil {
			t.Fatal("registering the same collectors twice should panic")
		}
	}()
	_ = NewRegistry(reg)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Error("default config should be enabled")
	}
	if cfg.Registry != prometheus.DefaultRegisterer {
		t.Error("default config should use the default registerer")
	}
	if DefaultRegistry == nil {
		t.Fatal("DefaultRegistry should be initialised")
	}
	if got := testutil.CollectAndCount(DefaultRegistry.StreamOperations); got != 0 {
		t.Errorf("default registry should start empty, got %d series", got)
	}
}

func TestFor_SharesRegistryPerRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := For(reg)
	second := For(reg)
	if first != second {
		t.Fatal("For should return the same Registry for one registerer")
	}

	if other := For(prometheus.NewRegistry()); other == first {
		t.Fatal("For should build a separate Registry per registerer")
	}
}

func TestFor_DefaultRegisterer(t *testing.T) {
	if For(nil) != DefaultRegistry {
		t.Error("nil registerer should select DefaultRegistry")
	}
	if For(prometheus.DefaultRegisterer) != DefaultRegistry {
		t.Error("default registerer should select DefaultRegistry")
	}
}
