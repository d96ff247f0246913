package chest

import (
	"fmt"
	"iter"
	"maps"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/chestcraft/internal/domain"
	"github.com/jhoicas/chestcraft/internal/domain/entity"
)

var _ Kernel = (*Store)(nil)

// Store implementación de Kernel sobre un map. Es dueño exclusivo del map y no tiene locks propios:
// el acceso concurrente se coordina desde fuera (ver memory.TxRunner).
type Store struct {
	items    map[string]int
	total    int
	capacity Capacity
}

// NewStore crea un cofre vacío con la política de capacidad indicada.
func NewStore(capacity Capacity) *Store {
	return &Store{
		items:    make(map[string]int),
		capacity: capacity,
	}
}

// StoreFactory devuelve una Factory que crea Stores vacíos con la misma política.
func StoreFactory(capacity Capacity) Factory {
	return func() Kernel { return NewStore(capacity) }
}

// AddItem suma quantity unidades de key, creando la entrada si no existe.
func (s *Store) AddItem(key string, quantity int) error {
	if key == "" {
		return fmt.Errorf("clave vacía: %w", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("cantidad %d para %q: %w", quantity, key, domain.ErrInvalidInput)
	}
	current, exists := s.items[key]
	if !s.capacity.Admits(len(s.items), s.total, exists) {
		return fmt.Errorf("agregar %d de %q (%s): %w", quantity, key, s.capacity, domain.ErrCapacityExceeded)
	}
	// total >= current, así que basta con acotar el total
	if quantity > math.MaxInt-s.total {
		return fmt.Errorf("agregar %d de %q: desborda el total: %w", quantity, key, domain.ErrCapacityExceeded)
	}
	s.items[key] = current + quantity
	s.total += quantity
	return nil
}

// RemoveItem retira quantity unidades de key. Si quantity >= cantidad almacenada, la entrada se elimina
// y se devuelve lo que había (no es error retirar de más).
func (s *Store) RemoveItem(key string, quantity int) (entity.ItemStack, error) {
	if key == "" {
		return entity.ItemStack{}, fmt.Errorf("clave vacía: %w", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return entity.ItemStack{}, fmt.Errorf("cantidad %d para %q: %w", quantity, key, domain.ErrInvalidInput)
	}
	current, ok := s.items[key]
	if !ok {
		return entity.ItemStack{}, fmt.Errorf("retirar %q: %w", key, domain.ErrNotFound)
	}
	if quantity >= current {
		delete(s.items, key)
		s.total -= current
		return entity.ItemStack{Key: key, Quantity: current}, nil
	}
	s.items[key] = current - quantity
	s.total -= quantity
	return entity.ItemStack{Key: key, Quantity: quantity}, nil
}

func (s *Store) ContainsItem(key string) bool {
	return s.items[key] > 0
}

func (s *Store) ItemQuantity(key string) int {
	return s.items[key]
}

func (s *Store) IsFull() bool {
	return s.capacity.Full(len(s.items), s.total)
}

// Clear reinicia el cofre a vacío.
func (s *Store) Clear() {
	clear(s.items)
	s.total = 0
}

func (s *Store) All() iter.Seq2[string, int] {
	return maps.All(s.items)
}

// Restore reemplaza el contenido por items sin evaluar la política de capacidad.
// Se usa para reponer un snapshot que el propio cofre tuvo; valida claves, cantidades y desbordamiento.
func (s *Store) Restore(items map[string]int) error {
	total := 0
	for key, qty := range items {
		if key == "" || qty <= 0 {
			return fmt.Errorf("restaurar %q con cantidad %d: %w", key, qty, domain.ErrInvalidInput)
		}
		if qty > math.MaxInt-total {
			return fmt.Errorf("restaurar %q: desborda el total: %w", key, domain.ErrCapacityExceeded)
		}
		total += qty
	}
	s.items = maps.Clone(items)
	if s.items == nil {
		s.items = make(map[string]int)
	}
	s.total = total
	return nil
}

// Capacity devuelve la política con la que se construyó el cofre.
func (s *Store) Capacity() Capacity {
	return s.capacity
}

// Usage devuelve el porcentaje de ocupación según la política.
func (s *Store) Usage() decimal.Decimal {
	return s.capacity.Usage(len(s.items), s.total)
}
