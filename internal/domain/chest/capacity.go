package chest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/chestcraft/internal/domain"
)

// PolicyKind identifica la política de capacidad de un cofre.
type PolicyKind int

const (
	PolicyUnbounded PolicyKind = iota
	PolicyTotalQuantity
	PolicyDistinctItems
)

// Capacity es la política de llenado que recibe el Store al construirse.
// Un cofre usa exactamente una política: suma total de cantidades o número de slots (claves distintas).
type Capacity struct {
	Kind  PolicyKind
	Limit int
}

// MaxTotalQuantity: el cofre está lleno cuando la suma de cantidades llega a n.
func MaxTotalQuantity(n int) Capacity {
	return Capacity{Kind: PolicyTotalQuantity, Limit: n}
}

// MaxDistinctItems: el cofre está lleno cuando ocupa n slots (claves distintas).
func MaxDistinctItems(n int) Capacity {
	return Capacity{Kind: PolicyDistinctItems, Limit: n}
}

// Unbounded nunca se llena.
func Unbounded() Capacity {
	return Capacity{Kind: PolicyUnbounded}
}

// ParseCapacity construye la política a partir de la configuración ("total", "slots", "unbounded").
func ParseCapacity(policy string, limit int) (Capacity, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "total", "total_quantity":
		if limit <= 0 {
			return Capacity{}, fmt.Errorf("límite %d para política total: %w", limit, domain.ErrInvalidInput)
		}
		return MaxTotalQuantity(limit), nil
	case "slots", "distinct", "distinct_items":
		if limit <= 0 {
			return Capacity{}, fmt.Errorf("límite %d para política slots: %w", limit, domain.ErrInvalidInput)
		}
		return MaxDistinctItems(limit), nil
	case "unbounded", "none", "":
		return Unbounded(), nil
	default:
		return Capacity{}, fmt.Errorf("política de capacidad %q: %w", policy, domain.ErrInvalidInput)
	}
}

// Full evalúa el predicado de llenado contra el estado actual.
func (c Capacity) Full(distinct, total int) bool {
	switch c.Kind {
	case PolicyTotalQuantity:
		return total >= c.Limit
	case PolicyDistinctItems:
		return distinct >= c.Limit
	default:
		return false
	}
}

// Admits indica si se puede agregar a una clave (existente o nueva). Sólo un cofre lleno rechaza,
// y sólo claves nuevas: una clave existente siempre acumula.
func (c Capacity) Admits(distinct, total int, exists bool) bool {
	return exists || !c.Full(distinct, total)
}

// Usage devuelve el porcentaje de ocupación (0-100, 2 decimales). Sin límite siempre es 0.
func (c Capacity) Usage(distinct, total int) decimal.Decimal {
	var used int
	switch c.Kind {
	case PolicyTotalQuantity:
		used = total
	case PolicyDistinctItems:
		used = distinct
	default:
		return decimal.Zero
	}
	if c.Limit <= 0 {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return decimal.NewFromInt(int64(used)).Mul(hundred).Div(decimal.NewFromInt(int64(c.Limit))).Round(2)
}

func (c Capacity) String() string {
	switch c.Kind {
	case PolicyTotalQuantity:
		return fmt.Sprintf("total<%d", c.Limit)
	case PolicyDistinctItems:
		return fmt.Sprintf("slots<%d", c.Limit)
	default:
		return "unbounded"
	}
}
