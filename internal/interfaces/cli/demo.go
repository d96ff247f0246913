package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/chestcraft/internal/application/crafting"
	"github.com/jhoicas/chestcraft/internal/application/dto"
	"github.com/jhoicas/chestcraft/internal/domain/chest"
	"github.com/jhoicas/chestcraft/internal/domain/entity"
	"github.com/jhoicas/chestcraft/internal/infrastructure/metrics"
)

// demoReport salida del comando demo.
type demoReport struct {
	Steps   []string          `json:"steps"`
	Crafts  []dto.CraftResult `json:"crafts"`
	Chest   dto.ChestResponse `json:"chest"`
	Metrics []metrics.Sample  `json:"metrics,omitempty"`
}

// NewDemoCommand crea el comando demo.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Recorrido del cofre y sistema de crafteo",
		Long: `Ejecuta dos demostraciones sobre cofres con la política configurada:

  1. Recorrido: agrega lingotes de hierro y oro, consulta, retira, filtra por cantidad y vacía.
  2. Crafteo: con {wood:3, stick:2} craftea sword (éxito) y pickaxe (faltan ingredientes).

Ejemplo:
  chest demo
  chest demo --policy slots --limit 57 --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), cmd, rootOpts)
		},
	}
}

func runDemo(ctx context.Context, cmd *cobra.Command, opts *RootOptions) error {
	capacity, err := opts.capacity()
	if err != nil {
		return err
	}
	recorder := opts.recorder()

	report := &demoReport{}
	if err := walkthrough(report, capacity); err != nil {
		return WrapExitError(ExitFailure, "recorrido del cofre", err)
	}
	if err := craftingDemo(ctx, report, capacity, recorder); err != nil {
		return WrapExitError(ExitFailure, "demostración de crafteo", err)
	}

	if opts.Metrics {
		lines, samples, err := metricLines(recorder)
		if err != nil {
			return WrapExitError(ExitFailure, "leer métricas", err)
		}
		report.Steps = append(report.Steps, "")
		report.Steps = append(report.Steps, lines...)
		report.Metrics = samples
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), Response{Status: "ok", Data: report})
	}
	return writeLines(cmd.OutOrStdout(), report.Steps)
}

// walkthrough recorre las operaciones del cofre sobre lingotes.
func walkthrough(report *demoReport, capacity chest.Capacity) error {
	p := newPrinter()
	c := chest.NewWithCapacity(capacity)
	out := func(format string, args ...any) {
		report.Steps = append(report.Steps, p.Sprintf(format, args...))
	}

	out("== Recorrido del cofre (%s) ==", capacity.String())
	for _, add := range []entity.ItemStack{
		{Key: "ironIngot", Quantity: 5},
		{Key: "gold_ingot", Quantity: 10},
		{Key: "ironIngot", Quantity: 5},
	} {
		if err := c.AddItem(add.Key, add.Quantity); err != nil {
			return err
		}
		out("Agregando %d de %s. Total: %d", add.Quantity, add.Key, c.TotalItems())
	}

	out("¿Contiene ironIngot? %s", yesNo(c.ContainsItem("ironIngot")))
	out("¿Contiene diamond? %s", yesNo(c.ContainsItem("diamond")))
	out("Cantidad de ironIngot: %d", c.ItemQuantity("ironIngot"))
	usage := describe(c).UsagePct
	if usage == "" {
		usage = "0"
	}
	out("¿Cofre lleno? %s (ocupación %s%%)", yesNo(c.IsFull()), usage)

	removed, err := c.RemoveItem("ironIngot", 3)
	if err != nil {
		return err
	}
	out("Retirando %d de %s. Quedan: %d", removed.Quantity, removed.Key, c.ItemQuantity("ironIngot"))
	out("Total de ítems: %d", c.TotalItems())

	keys, err := c.ItemsByQuantity(5)
	if err != nil {
		return err
	}
	out("Ítems con cantidad >= %d: %s", 5, joinKeys(keys))

	ok, err := c.CanCraft("ironIngot", "stick")
	if err != nil {
		return err
	}
	out("¿Se puede craftear una espada de hierro (ironIngot, stick)? %s", yesNo(ok))
	out("Contenido: %s", c.String())

	other := c.NewInstance()
	for _, add := range []entity.ItemStack{
		{Key: "gold_ingot", Quantity: 10},
		{Key: "ironIngot", Quantity: 7},
	} {
		if err := other.AddItem(add.Key, add.Quantity); err != nil {
			return err
		}
	}
	out("Otro cofre con el mismo contenido: %s. ¿Iguales? %s", other.String(), yesNo(c.Equal(other)))

	c.Clear()
	out("Vaciando el cofre... Total: %d", c.TotalItems())
	return nil
}

// craftingDemo craftea sword y pickaxe sobre {wood:3, stick:2}.
func craftingDemo(ctx context.Context, report *demoReport, capacity chest.Capacity, recorder *metrics.CraftRecorder) error {
	p := newPrinter()
	c := chest.NewWithCapacity(capacity)
	if err := c.AddItem("wood", 3); err != nil {
		return err
	}
	if err := c.AddItem("stick", 2); err != nil {
		return err
	}
	s := newSession(c, recorder)

	report.Steps = append(report.Steps, "", "== Sistema de crafteo ==", c.String())

	results, err := s.craft.CraftRecipes(ctx, []entity.Recipe{
		{Output: "sword", Ingredients: []string{"wood", "stick"}},
		{Output: "pickaxe", Ingredients: []string{"wood", "stick", "stone"}},
	})
	if err != nil {
		return err
	}
	for _, res := range results {
		report.Steps = append(report.Steps, p.Sprintf("Intentando craftear: %s", res.Output))
		if res.State == crafting.StateSuccess.String() {
			report.Steps = append(report.Steps, p.Sprintf("¡%s crafteado! Cofre actualizado:", res.Output))
		} else {
			report.Steps = append(report.Steps, p.Sprintf("No se puede craftear %s: %s.", res.Output, reasonText(res.Reason)))
		}
		report.Steps = append(report.Steps, chest.Format(res.Chest))
	}
	report.Crafts = results

	return s.runner.View(ctx, func(c *chest.Chest) error {
		report.Chest = describe(c)
		return nil
	})
}
