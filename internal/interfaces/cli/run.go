package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/chestcraft/internal/application/dto"
	"github.com/jhoicas/chestcraft/internal/domain/chest"
	"github.com/jhoicas/chestcraft/internal/domain/entity"
	"github.com/jhoicas/chestcraft/internal/infrastructure/metrics"
	"github.com/jhoicas/chestcraft/pkg/config"
)

// RunOptions flags del comando run.
type RunOptions struct {
	*RootOptions
	FailOnError bool
}

// StepReport resultado de un paso del escenario.
type StepReport struct {
	Index  int              `json:"index"`
	Op     string           `json:"op"`
	OK     bool             `json:"ok"`
	Detail string           `json:"detail"`
	Error  string           `json:"error,omitempty"`
	Craft  *dto.CraftResult `json:"craft,omitempty"`
	Chest  string           `json:"chest"`
}

// ScenarioReport salida del comando run.
type ScenarioReport struct {
	Name     string            `json:"name"`
	Capacity string            `json:"capacity"`
	Steps    []StepReport      `json:"steps"`
	Failed   int               `json:"failed"`
	Chest    dto.ChestResponse `json:"chest"`
	Metrics  []metrics.Sample  `json:"metrics,omitempty"`
}

// NewRunCommand crea el comando run.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Ejecuta un escenario YAML sobre un cofre",
		Long: `Carga un escenario (contenido inicial y pasos add/remove/craft/query/clear),
ejecuta cada paso como una transacción sobre el cofre e imprime el contenido tras cada paso.

Ejemplo:
  chest run ./escenarios/taller.yaml
  chest run --format json --fail-on-error ./escenarios/taller.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := LoadScenario(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "escenario inválido", err)
			}
			return runScenario(cmd, opts, sc)
		},
	}

	cmd.Flags().BoolVar(&opts.FailOnError, "fail-on-error", false, "salir con código 1 si algún paso falla")

	return cmd
}

func runScenario(cmd *cobra.Command, opts *RunOptions, sc *Scenario) error {
	ctx := cmd.Context()

	capacity, err := opts.capacity()
	if err != nil {
		return err
	}
	if sc.Capacity != nil {
		capacity, err = config.ChestConfig{Policy: sc.Capacity.Policy, Limit: sc.Capacity.Limit}.Capacity()
		if err != nil {
			return WrapExitError(ExitCommandError, "capacidad del escenario inválida", err)
		}
	}

	c := chest.NewWithCapacity(capacity)
	for _, item := range sc.Items {
		if err := c.AddItem(item.Key, item.Quantity); err != nil {
			return WrapExitError(ExitCommandError, "contenido inicial inválido", err)
		}
	}
	recorder := opts.recorder()
	s := newSession(c, recorder)

	report := &ScenarioReport{Name: sc.Name, Capacity: capacity.String()}
	for i, step := range sc.Steps {
		sr := s.execute(ctx, i+1, step)
		if !sr.OK {
			report.Failed++
		}
		report.Steps = append(report.Steps, sr)
	}
	if err := s.runner.View(ctx, func(c *chest.Chest) error {
		report.Chest = describe(c)
		return nil
	}); err != nil {
		return WrapExitError(ExitFailure, "leer cofre", err)
	}

	var metricText []string
	if opts.Metrics {
		lines, samples, err := metricLines(recorder)
		if err != nil {
			return WrapExitError(ExitFailure, "leer métricas", err)
		}
		metricText = lines
		report.Metrics = samples
	}

	zerolog.Ctx(ctx).Debug().Str("scenario", sc.Name).Int("failed", report.Failed).Msg("escenario ejecutado")

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), Response{Status: "ok", Data: report}); err != nil {
			return err
		}
	} else {
		if err := writeLines(cmd.OutOrStdout(), report.textLines(metricText)); err != nil {
			return err
		}
	}

	if opts.FailOnError && report.Failed > 0 {
		return WrapExitError(ExitFailure, newPrinter().Sprintf("%d paso(s) fallido(s)", report.Failed), nil)
	}
	return nil
}

// chestUnavailable reemplaza el contenido cuando no se pudo leer el cofre tras el paso.
const chestUnavailable = "Chest: (no disponible)"

// execute corre un paso; add, remove y clear son transacciones de una operación.
func (s *session) execute(ctx context.Context, index int, step Step) StepReport {
	p := newPrinter()
	op, _ := step.Op()
	sr := StepReport{Index: index, Op: op}

	var err error
	switch op {
	case OpAdd:
		sr.Detail = p.Sprintf("agregar %d de %s", step.Add.Quantity, step.Add.Key)
		err = s.runner.Run(ctx, func(c *chest.Chest) error {
			return c.AddItem(step.Add.Key, step.Add.Quantity)
		})
	case OpRemove:
		var removed entity.ItemStack
		err = s.runner.Run(ctx, func(c *chest.Chest) error {
			var rmErr error
			removed, rmErr = c.RemoveItem(step.Remove.Key, step.Remove.Quantity)
			return rmErr
		})
		sr.Detail = p.Sprintf("retirar %d de %s", step.Remove.Quantity, step.Remove.Key)
		if err == nil {
			sr.Detail = p.Sprintf("%s (retirado %d)", sr.Detail, removed.Quantity)
		}
	case OpCraft:
		var res *dto.CraftResult
		res, err = s.craft.Craft(ctx, step.Craft.Output, step.Craft.Ingredients)
		sr.Craft = res
		sr.Detail = p.Sprintf("craftear %s (%s)", step.Craft.Output, strings.Join(step.Craft.Ingredients, ", "))
	case OpQuery:
		var keys []string
		err = s.runner.View(ctx, func(c *chest.Chest) error {
			var qErr error
			keys, qErr = c.ItemsByQuantity(step.Query.MinQuantity)
			return qErr
		})
		sr.Detail = p.Sprintf("ítems con cantidad >= %d: %s", step.Query.MinQuantity, joinKeys(keys))
	case OpClear:
		sr.Detail = "vaciar"
		err = s.runner.Run(ctx, func(c *chest.Chest) error {
			c.Clear()
			return nil
		})
	}

	sr.OK = err == nil
	if err != nil {
		sr.Error = err.Error()
	}
	if viewErr := s.runner.View(ctx, func(c *chest.Chest) error {
		sr.Chest = c.String()
		return nil
	}); viewErr != nil {
		sr.Chest = chestUnavailable
		if sr.Error == "" {
			sr.Error = viewErr.Error()
		}
	}
	return sr
}

func (r *ScenarioReport) textLines(metricText []string) []string {
	p := newPrinter()
	lines := []string{p.Sprintf("== Escenario %s (%s) ==", r.Name, r.Capacity)}
	for _, sr := range r.Steps {
		status := "ok"
		switch {
		case sr.Craft != nil && sr.OK:
			status = sr.Craft.State
		case sr.Craft != nil:
			status = p.Sprintf("%s (%s)", sr.Craft.State, reasonText(sr.Craft.Reason))
		case !sr.OK:
			status = "error: " + sr.Error
		}
		lines = append(lines, p.Sprintf("[%d] %s: %s", sr.Index, sr.Detail, status))
		lines = append(lines, "    "+sr.Chest)
	}
	lines = append(lines, p.Sprintf("Total: %d, pasos fallidos: %d, ocupación %s%%", r.Chest.Total, r.Failed, usageOrZero(r.Chest.UsagePct)))
	if len(metricText) > 0 {
		lines = append(lines, metricText...)
	}
	return lines
}

func usageOrZero(usage string) string {
	if usage == "" {
		return "0"
	}
	return usage
}
