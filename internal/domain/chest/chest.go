package chest

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jhoicas/chestcraft/internal/domain"
	"github.com/jhoicas/chestcraft/internal/domain/entity"
)

// Chest agrega al Kernel las operaciones secundarias (consultas agregadas, vaciado, igualdad,
// orden y ciclo de vida). No guarda copia propia del contenido: cada operación recorre el Kernel.
type Chest struct {
	k       Kernel
	factory Factory
}

// New envuelve un Kernel. factory se usa en NewInstance; si es nil se crean Stores sin límite.
func New(k Kernel, factory Factory) *Chest {
	if factory == nil {
		factory = StoreFactory(Unbounded())
	}
	return &Chest{k: k, factory: factory}
}

// NewWithCapacity crea un cofre vacío respaldado por un Store con la política indicada.
func NewWithCapacity(capacity Capacity) *Chest {
	factory := StoreFactory(capacity)
	return New(factory(), factory)
}

// Kernel devuelve el kernel subyacente.
func (c *Chest) Kernel() Kernel {
	return c.k
}

func (c *Chest) AddItem(key string, quantity int) error {
	return c.k.AddItem(key, quantity)
}

func (c *Chest) RemoveItem(key string, quantity int) (entity.ItemStack, error) {
	return c.k.RemoveItem(key, quantity)
}

func (c *Chest) ContainsItem(key string) bool {
	return c.k.ContainsItem(key)
}

func (c *Chest) ItemQuantity(key string) int {
	return c.k.ItemQuantity(key)
}

func (c *Chest) IsFull() bool {
	return c.k.IsFull()
}

// Snapshot devuelve una copia independiente del contenido.
func (c *Chest) Snapshot() map[string]int {
	return maps.Collect(c.k.All())
}

// TotalItems suma todas las cantidades.
func (c *Chest) TotalItems() int {
	total := 0
	for _, qty := range c.k.All() {
		total += qty
	}
	return total
}

// CanCraft indica si todas las claves están presentes (basta una unidad de cada una).
func (c *Chest) CanCraft(keys ...string) (bool, error) {
	if len(keys) == 0 {
		return false, fmt.Errorf("lista de ingredientes vacía: %w", domain.ErrInvalidInput)
	}
	if slices.Contains(keys, "") {
		return false, fmt.Errorf("ingrediente con clave vacía: %w", domain.ErrInvalidInput)
	}
	for _, key := range keys {
		if !c.k.ContainsItem(key) {
			return false, nil
		}
	}
	return true, nil
}

// ItemsByQuantity devuelve, ordenadas, las claves con cantidad >= minQuantity.
func (c *Chest) ItemsByQuantity(minQuantity int) ([]string, error) {
	if minQuantity < 0 {
		return nil, fmt.Errorf("cantidad mínima %d: %w", minQuantity, domain.ErrInvalidInput)
	}
	keys := []string{}
	for key, qty := range c.k.All() {
		if qty >= minQuantity {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Clear vacía el cofre retirando cada entrada con RemoveItem. Sobre un cofre vacío no hace nada.
func (c *Chest) Clear() {
	for key, qty := range c.Snapshot() {
		// la clave viene del snapshot, RemoveItem no puede fallar
		_, _ = c.k.RemoveItem(key, qty)
	}
}

// Restore reemplaza el contenido por items. Usa Restorer si el kernel lo implementa;
// si no, vacía el cofre y agrega cada entrada en orden de clave.
func (c *Chest) Restore(items map[string]int) error {
	if r, ok := c.k.(Restorer); ok {
		return r.Restore(items)
	}
	c.Clear()
	for _, key := range slices.Sorted(maps.Keys(items)) {
		if err := c.k.AddItem(key, items[key]); err != nil {
			return fmt.Errorf("restaurar %q: %w", key, err)
		}
	}
	return nil
}

// Equal compara el contenido como mapping.
func (c *Chest) Equal(other *Chest) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c == other {
		return true
	}
	return maps.Equal(c.Snapshot(), other.Snapshot())
}

// Hash es consistente con Equal: se calcula sobre el snapshot ordenado por clave.
func (c *Chest) Hash() uint64 {
	snap := c.Snapshot()
	h := xxhash.New()
	buf := make([]byte, 0, 20)
	for _, key := range slices.Sorted(maps.Keys(snap)) {
		_, _ = h.WriteString(key)
		buf = append(buf[:0], 0)
		buf = strconv.AppendInt(buf, int64(snap[key]), 10)
		buf = append(buf, 0)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// String representación diagnóstica determinista, p. ej. "Chest: [gold, 10] [iron, 2]".
func (c *Chest) String() string {
	return Format(c.Snapshot())
}

// Format representa un snapshot igual que Chest.String.
func Format(items map[string]int) string {
	var b strings.Builder
	b.WriteString("Chest:")
	for _, key := range slices.Sorted(maps.Keys(items)) {
		fmt.Fprintf(&b, " [%s, %d]", key, items[key])
	}
	return b.String()
}

// Compare ordena sólo por TotalItems. Dos cofres con distinto contenido pueden comparar 0.
func (c *Chest) Compare(other *Chest) int {
	return cmp.Compare(c.TotalItems(), other.TotalItems())
}

// NewInstance crea un cofre vacío del mismo tipo usando la factory.
func (c *Chest) NewInstance() *Chest {
	return New(c.factory(), c.factory)
}

// TransferFrom mueve todas las entradas de other a este cofre (acumulando) y deja other vacío.
// Si una entrada no cabe, se detiene: lo ya movido queda movido y el resto sigue en other.
func (c *Chest) TransferFrom(other *Chest) error {
	if other == nil || other == c || other.k == c.k {
		return fmt.Errorf("transferir desde el mismo cofre o nil: %w", domain.ErrInvalidInput)
	}
	snap := other.Snapshot()
	for _, key := range slices.Sorted(maps.Keys(snap)) {
		qty := snap[key]
		if err := c.k.AddItem(key, qty); err != nil {
			return fmt.Errorf("transferir %q: %w", key, err)
		}
		if _, err := other.k.RemoveItem(key, qty); err != nil {
			return fmt.Errorf("vaciar %q del origen: %w", key, err)
		}
	}
	return nil
}
