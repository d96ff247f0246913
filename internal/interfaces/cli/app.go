package cli

import (
	"github.com/jhoicas/chestcraft/internal/application/crafting"
	"github.com/jhoicas/chestcraft/internal/application/dto"
	"github.com/jhoicas/chestcraft/internal/domain/chest"
	"github.com/jhoicas/chestcraft/internal/infrastructure/memory"
	"github.com/jhoicas/chestcraft/internal/infrastructure/metrics"
	"github.com/jhoicas/chestcraft/pkg/config"
)

// session conecta un cofre con su runner transaccional y el caso de uso de crafteo.
type session struct {
	runner *memory.TxRunner
	craft  *crafting.CraftUseCase
}

func newSession(c *chest.Chest, recorder *metrics.CraftRecorder) *session {
	runner := memory.NewTxRunner(c)
	return &session{
		runner: runner,
		craft:  crafting.NewCraftUseCase(runner, recorder),
	}
}

// capacity resuelve la política a partir de los flags.
func (o *RootOptions) capacity() (chest.Capacity, error) {
	capacity, err := config.ChestConfig{Policy: o.Policy, Limit: o.Limit}.Capacity()
	if err != nil {
		return chest.Capacity{}, WrapExitError(ExitCommandError, "política de capacidad inválida", err)
	}
	return capacity, nil
}

func (o *RootOptions) recorder() *metrics.CraftRecorder {
	return metrics.NewCraftRecorder(o.cfg.Metrics.Namespace)
}

// describe vista serializable del cofre.
func describe(c *chest.Chest) dto.ChestResponse {
	resp := dto.ChestResponse{
		Items: c.Snapshot(),
		Total: c.TotalItems(),
		Full:  c.IsFull(),
	}
	if s, ok := c.Kernel().(*chest.Store); ok {
		resp.Capacity = s.Capacity().String()
		resp.UsagePct = s.Usage().String()
	}
	return resp
}

// metricLines líneas de texto con los contadores, si se pidieron.
func metricLines(recorder *metrics.CraftRecorder) ([]string, []metrics.Sample, error) {
	samples, err := recorder.Samples()
	if err != nil {
		return nil, nil, err
	}
	p := newPrinter()
	lines := []string{"Métricas de crafteo:"}
	for _, s := range samples {
		lines = append(lines, p.Sprintf("  %s %s %d", s.Output, s.Outcome, int(s.Value)))
	}
	return lines, samples, nil
}
