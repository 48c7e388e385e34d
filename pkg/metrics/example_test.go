package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_basicUsage demonstrates creating an isolated registry and updating it.
func Example_basicUsage() {
	registry := NewRegistry(prometheus.NewRegistry())

	registry.StreamOperations.WithLabelValues("read", "buffer", "inbox").Add(3)
	registry.StreamBytesRead.WithLabelValues("buffer", "inbox").Add(42)

	fmt.Println(testutil.ToFloat64(registry.StreamOperations.WithLabelValues("read", "buffer", "inbox")))
	fmt.Println(testutil.ToFloat64(registry.StreamBytesRead.WithLabelValues("buffer", "inbox")))

	// Output:
	// 3
	// 42
}

// Example_customRegistry demonstrates gathering from a custom Prometheus registry.
func Example_customRegistry() {
	customRegistry := prometheus.NewRegistry()

	config := Config{
		Enabled:  true,
		Registry: customRegistry,
	}

	registry := For(config.Registry)
	registry.StreamPipes.WithLabelValues("resource", "upload").Inc()

	families, err := customRegistry.Gather()
	if err != nil {
		fmt.Printf("gather failed: %v\n", err)
		return
	}

	for _, mf := range families {
		fmt.Println(mf.GetName())
	}

	// Output:
	// streamio_stream_pipes_total
}
