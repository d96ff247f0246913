package crafting

import (
	"context"
	"errors"

	"github.com/jhoicas/chestcraft/internal/domain"
)

// State estados de la transacción de crafteo: Checking → Consuming → Producing → Success | Failed.
type State int

const (
	StateChecking State = iota
	StateConsuming
	StateProducing
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateConsuming:
		return "consuming"
	case StateProducing:
		return "producing"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Razones de fallo (también son el outcome en métricas).
const (
	OutcomeSuccess           = "success"
	ReasonMissingIngredients = "missing_ingredients"
	ReasonNotFound           = "not_found"
	ReasonCapacityExceeded   = "capacity_exceeded"
	ReasonInvalidInput       = "invalid_input"
	ReasonCanceled           = "canceled"
	ReasonInternal           = "internal"
)

// reasonFor traduce el error de la transacción a su razón de fallo.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingIngredients):
		return ReasonMissingIngredients
	case errors.Is(err, domain.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, domain.ErrCapacityExceeded):
		return ReasonCapacityExceeded
	case errors.Is(err, domain.ErrInvalidInput):
		return ReasonInvalidInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	default:
		return ReasonInternal
	}
}
