// Package metrics expone contadores Prometheus de los crafteos.
package metrics

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/jhoicas/chestcraft/internal/application/crafting"
)

var _ crafting.MetricsRecorder = (*CraftRecorder)(nil)

// CraftRecorder cuenta intentos de crafteo por ítem de salida y resultado en un registry propio.
type CraftRecorder struct {
	registry *prometheus.Registry
	crafts   *prometheus.CounterVec
}

// Sample una serie del contador.
type Sample struct {
	Output  string
	Outcome string
	Value   float64
}

// NewCraftRecorder crea el registry y registra el contador <namespace>_crafting_attempts_total.
func NewCraftRecorder(namespace string) *CraftRecorder {
	crafts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "crafting",
		Name:      "attempts_total",
		Help:      "Intentos de crafteo por ítem de salida y resultado.",
	}, []string{"output", "outcome"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(crafts)
	return &CraftRecorder{registry: reg, crafts: crafts}
}

func (r *CraftRecorder) RecordCraft(output, outcome string) {
	r.crafts.WithLabelValues(output, outcome).Inc()
}

// Counter devuelve la colección del contador (útil en tests con testutil).
func (r *CraftRecorder) Counter() *prometheus.CounterVec {
	return r.crafts
}

// Samples reúne las series actuales ordenadas por output y outcome.
func (r *CraftRecorder) Samples() ([]Sample, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			out = append(out, sampleOf(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Output != out[j].Output {
			return out[i].Output < out[j].Output
		}
		return out[i].Outcome < out[j].Outcome
	})
	return out, nil
}

func sampleOf(m *dto.Metric) Sample {
	s := Sample{Value: m.GetCounter().GetValue()}
	for _, lp := range m.GetLabel() {
		switch lp.GetName() {
		case "output":
			s.Output = lp.GetValue()
		case "outcome":
			s.Outcome = lp.GetValue()
		}
	}
	return s
}
