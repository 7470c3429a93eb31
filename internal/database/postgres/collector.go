package postgres

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	poolTotalDesc = prometheus.NewDesc(
		"techsync_db_pool_connections",
		"Open connections in the pgx pool by state",
		[]string{"state"}, nil,
	)
	poolMaxDesc = prometheus.NewDesc(
		"techsync_db_pool_max_connections",
		"Configured pgx pool size",
		nil, nil,
	)
	poolAcquireDesc = prometheus.NewDesc(
		"techsync_db_pool_acquires_total",
		"Successful connection acquires",
		nil, nil,
	)
	poolEmptyAcquireDesc = prometheus.NewDesc(
		"techsync_db_pool_empty_acquires_total",
		"Acquires that had to wait for a free connection",
		nil, nil,
	)
	poolAcquireWaitDesc = prometheus.NewDesc(
		"techsync_db_pool_acquire_wait_seconds_total",
		"Cumulative time spent waiting for a connection",
		nil, nil,
	)
)

// PoolCollector reads pgxpool counters on every scrape.
type PoolCollector struct {
	pool *Pool
}

func NewPoolCollector(p *Pool) *PoolCollector {
	return &PoolCollector{pool: p}
}

func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- poolTotalDesc
	ch <- poolMaxDesc
	ch <- poolAcquireDesc
	ch <- poolEmptyAcquireDesc
	ch <- poolAcquireWaitDesc
}

func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.pool.Stat()
	if st == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(poolTotalDesc, prometheus.GaugeValue, float64(st.AcquiredConns()), "acquired")
	ch <- prometheus.MustNewConstMetric(poolTotalDesc, prometheus.GaugeValue, float64(st.IdleConns()), "idle")
	ch <- prometheus.MustNewConstMetric(poolTotalDesc, prometheus.GaugeValue, float64(st.ConstructingConns()), "constructing")
	ch <- prometheus.MustNewConstMetric(poolMaxDesc, prometheus.GaugeValue, float64(st.MaxConns()))
	ch <- prometheus.MustNewConstMetric(poolAcquireDesc, prometheus.CounterValue, float64(st.AcquireCount()))
	ch <- prometheus.MustNewConstMetric(poolEmptyAcquireDesc, prometheus.CounterValue, float64(st.EmptyAcquireCount()))
	ch <- prometheus.MustNewConstMetric(poolAcquireWaitDesc, prometheus.CounterValue, st.AcquireDuration().Seconds())
}
