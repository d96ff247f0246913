package crafting

import (
	"context"

	"github.com/jhoicas/chestcraft/internal/domain/chest"
)

// TxRunner ejecuta una función con acceso exclusivo al cofre. Si fn devuelve error, el cofre
// vuelve al estado previo. Garantiza la atomicidad de verificar → consumir → producir.
type TxRunner interface {
	Run(ctx context.Context, fn func(c *chest.Chest) error) error
	// View da acceso de sólo lectura; varias lecturas pueden correr a la vez. fn no debe mutar el cofre.
	View(ctx context.Context, fn func(c *chest.Chest) error) error
}

// MetricsRecorder registra el resultado de cada crafteo (outcome = "success" o la razón de fallo).
type MetricsRecorder interface {
	RecordCraft(output, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordCraft(string, string) {}
