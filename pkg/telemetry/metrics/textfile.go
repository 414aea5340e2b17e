package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes every collected metric to path in the Prometheus text
// exposition format, for pickup by the node exporter's textfile collector.
// The file is replaced atomically. An empty path or a disabled collector is
// a no-op.
func (c *Collector) WriteTextfile(path string) error {
	if path == "" || !c.config.Enabled {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}
