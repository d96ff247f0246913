package crafting

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/chestcraft/internal/application/dto"
	"github.com/jhoicas/chestcraft/internal/domain"
	"github.com/jhoicas/chestcraft/internal/domain/chest"
	"github.com/jhoicas/chestcraft/internal/domain/entity"
)

// CraftUseCase convierte ingredientes del cofre en una unidad de un ítem de salida.
// Cada crafteo corre completo dentro de TxRunner.Run: si falla en cualquier estado el cofre queda intacto.
type CraftUseCase struct {
	txRunner TxRunner
	metrics  MetricsRecorder
}

// NewCraftUseCase construye el caso de uso. metrics puede ser nil.
func NewCraftUseCase(txRunner TxRunner, metrics MetricsRecorder) *CraftUseCase {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &CraftUseCase{
		txRunner: txRunner,
		metrics:  metrics,
	}
}

// Craft verifica que estén todos los ingredientes, consume una unidad de cada uno y agrega una unidad de output.
// En caso de fallo devuelve igualmente el resultado (estado failed, razón y contenido sin cambios) junto con el error.
func (uc *CraftUseCase) Craft(ctx context.Context, output string, ingredients []string) (*dto.CraftResult, error) {
	res := &dto.CraftResult{
		TxID:        uuid.New().String(),
		Output:      output,
		Ingredients: slices.Clone(ingredients),
	}
	log := zerolog.Ctx(ctx).With().Str("tx_id", res.TxID).Str("output", output).Logger()

	if output == "" {
		return uc.fail(&log, res, nil, fmt.Errorf("salida vacía: %w", domain.ErrInvalidInput))
	}

	var before map[string]int
	err := uc.txRunner.Run(ctx, func(c *chest.Chest) error {
		// el rollback del runner deja el cofre igual a before
		before = c.Snapshot()

		res.Trail = append(res.Trail, StateChecking.String())
		ok, err := c.CanCraft(ingredients...)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("craftear %q: %w", output, domain.ErrMissingIngredients)
		}

		res.Trail = append(res.Trail, StateConsuming.String())
		for _, key := range ingredients {
			if _, err := c.RemoveItem(key, 1); err != nil {
				return fmt.Errorf("consumir %q: %w", key, err)
			}
		}

		res.Trail = append(res.Trail, StateProducing.String())
		if err := c.AddItem(output, 1); err != nil {
			return fmt.Errorf("producir %q: %w", output, err)
		}

		res.Chest = c.Snapshot()
		return nil
	})
	if err != nil {
		return uc.fail(&log, res, before, err)
	}

	res.State = StateSuccess.String()
	res.Trail = append(res.Trail, res.State)
	uc.metrics.RecordCraft(output, OutcomeSuccess)
	log.Info().Strs("ingredients", ingredients).Msg("crafteo completado")
	return res, nil
}

func (uc *CraftUseCase) fail(log *zerolog.Logger, res *dto.CraftResult, before map[string]int, err error) (*dto.CraftResult, error) {
	res.State = StateFailed.String()
	res.Reason = reasonFor(err)
	res.Trail = append(res.Trail, res.State)
	res.Chest = before
	uc.metrics.RecordCraft(res.Output, res.Reason)
	log.Warn().Err(err).Str("reason", res.Reason).Msg("crafteo fallido")
	return res, err
}

// CraftRecipes craftea cada receta en orden, cada una en su propia transacción.
// Los fallos de una receta quedan en su resultado; sólo la cancelación del contexto corta el lote.
func (uc *CraftUseCase) CraftRecipes(ctx context.Context, recipes []entity.Recipe) ([]dto.CraftResult, error) {
	results := make([]dto.CraftResult, 0, len(recipes))
	for _, r := range recipes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, _ := uc.Craft(ctx, r.Output, r.Ingredients)
		results = append(results, *res)
	}
	return results, nil
}
