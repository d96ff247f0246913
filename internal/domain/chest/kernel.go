// Package chest implementa el cofre: un inventario acotado de clave → cantidad.
//
// El Kernel expone sólo operaciones primitivas que preservan directamente el invariante
// de representación (toda entrada almacenada tiene cantidad > 0). Chest agrega las
// operaciones secundarias construidas exclusivamente sobre el Kernel.
package chest

import (
	"iter"

	"github.com/jhoicas/chestcraft/internal/domain/entity"
)

// Kernel define las operaciones primitivas del cofre.
type Kernel interface {
	// AddItem suma quantity unidades de key. Falla con ErrInvalidInput o ErrCapacityExceeded.
	AddItem(key string, quantity int) error
	// RemoveItem retira hasta quantity unidades de key; si quantity >= almacenado elimina la entrada.
	RemoveItem(key string, quantity int) (entity.ItemStack, error)
	ContainsItem(key string) bool
	// ItemQuantity devuelve 0 si key no está.
	ItemQuantity(key string) int
	IsFull() bool
	Clear()
	// All recorre las entradas vivas. El orden no está definido y no se debe mutar durante el recorrido.
	All() iter.Seq2[string, int]
}

// Factory crea un Kernel vacío del mismo tipo.
type Factory func() Kernel

// Restorer lo implementan los kernels que reponen un snapshot completo sin pasar por la política
// de capacidad. Un cofre con política total puede superar su límite acumulando claves existentes,
// y ese estado no siempre se reconstruye con AddItem.
type Restorer interface {
	Restore(items map[string]int) error
}
