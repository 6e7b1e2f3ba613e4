package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var jobsDesc = prometheus.NewDesc(
	"jobboard_jobs_in_status",
	"Number of active jobs currently in each status column.",
	[]string{"status"},
	nil,
)

// BoardCollector exposes the current board occupancy as a gauge per status
// column. Counts are pulled on scrape through the provider func so the
// collector holds no state of its own.
type BoardCollector struct {
	counts func() map[string]int
}

var _ prometheus.Collector = (*BoardCollector)(nil)

func NewBoardCollector(counts func() map[string]int) *BoardCollector {
	return &BoardCollector{counts: counts}
}

func (c *BoardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- jobsDesc
}

func (c *BoardCollector) Collect(ch chan<- prometheus.Metric) {
	for status, n := range c.counts() {
		ch <- prometheus.MustNewConstMetric(jobsDesc, prometheus.GaugeValue, float64(n), status)
	}
}
