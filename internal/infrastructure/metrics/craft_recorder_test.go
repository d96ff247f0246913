package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/chestcraft/internal/infrastructure/metrics"
)

func TestCraftRecorder_Cuenta(t *testing.T) {
	rec := metrics.NewCraftRecorder("chestcraft")

	rec.RecordCraft("sword", "success")
	rec.RecordCraft("sword", "success")
	rec.RecordCraft("pickaxe", "missing_ingredients")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.Counter().WithLabelValues("sword", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.Counter().WithLabelValues("pickaxe", "missing_ingredients")))
}

func TestCraftRecorder_SamplesOrdenados(t *testing.T) {
	rec := metrics.NewCraftRecorder("")
	rec.RecordCraft("sword", "success")
	rec.RecordCraft("pickaxe", "missing_ingredients")
	rec.RecordCraft("sword", "capacity_exceeded")

	samples, err := rec.Samples()
	require.NoError(t, err)
	assert.Equal(t, []metrics.Sample{
		{Output: "pickaxe", Outcome: "missing_ingredients", Value: 1},
		{Output: "sword", Outcome: "capacity_exceeded", Value: 1},
		{Output: "sword", Outcome: "success", Value: 1},
	}, samples)
}

func TestCraftRecorder_SinSeries(t *testing.T) {
	samples, err := metrics.NewCraftRecorder("chestcraft").Samples()
	require.NoError(t, err)
	assert.Empty(t, samples)
}
