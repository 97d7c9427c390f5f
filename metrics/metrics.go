package metrics

import (
	"strconv"

	"github.com/gasparian/lsh-index-go/lsh"
	"github.com/prometheus/client_golang/prometheus"
)

// CollisionCollector exports bucket collisions as prometheus metrics
type CollisionCollector struct {
	collisions *prometheus.CounterVec
	bucketSize prometheus.Histogram
}

// NewCollisionCollector creates collector and registers its metrics
func NewCollisionCollector(reg prometheus.Registerer) (*CollisionCollector, error) {
	c := &CollisionCollector{
		collisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lsh_bucket_collisions_total",
				Help: "Total number of inserts that landed into a non-empty bucket",
			},
			[]string{"table"},
		),
		bucketSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lsh_bucket_size",
				Help:    "Bucket size right after a collision",
				Buckets: prometheus.LinearBuckets(2, 1, 4),
			},
		),
	}
	for _, collector := range []prometheus.Collector{c.collisions, c.bucketSize} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// OnCollision implements lsh.CollisionObserver
func (c *CollisionCollector) OnCollision(col lsh.Collision) {
	c.collisions.WithLabelValues(strconv.Itoa(col.Table)).Inc()
	c.bucketSize.Observe(float64(col.Size))
}
