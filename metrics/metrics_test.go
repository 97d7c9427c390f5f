package metrics

import (
	"math/rand/v2"
	"testing"

	"github.com/gasparian/lsh-index-go/lsh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollisionCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollisionCollector(reg)
	require.NoError(t, err)

	c.OnCollision(lsh.Collision{Table: 0, Prefix: "0101", Size: 2})
	c.OnCollision(lsh.Collision{Table: 0, Prefix: "0101", Size: 3})
	c.OnCollision(lsh.Collision{Table: 1, Prefix: "1111", Size: 2})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.collisions.WithLabelValues("0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.collisions.WithLabelValues("1")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.collisions))
	assert.Equal(t, 1, testutil.CollectAndCount(c.bucketSize))

	_, err = NewCollisionCollector(reg)
	assert.Error(t, err, "registering the same metrics twice must fail")
}

func TestCollisionCollectorWithIndex(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollisionCollector(reg)
	require.NoError(t, err)

	index, err := lsh.New(
		lsh.Config{NPlanes: 8, Dims: 3, NTables: 2},
		lsh.WithSource(rand.NewPCG(1, 2)),
		lsh.WithObserver(c),
	)
	require.NoError(t, err)
	vec := []float64{1, 2, 3}
	for i := 0; i < 3; i++ {
		require.NoError(t, index.Insert(vec, "id"))
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(c.collisions.WithLabelValues("0")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.collisions.WithLabelValues("1")))
}
