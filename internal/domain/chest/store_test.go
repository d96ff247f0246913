package chest_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/chestcraft/internal/domain"
	"github.com/jhoicas/chestcraft/internal/domain/chest"
	"github.com/jhoicas/chestcraft/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// AddItem
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_AddItemAcumula(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())

	require.NoError(t, s.AddItem("wood", 3))
	require.NoError(t, s.AddItem("wood", 4))
	require.NoError(t, s.AddItem("stick", 1))

	assert.Equal(t, 7, s.ItemQuantity("wood"))
	assert.Equal(t, 1, s.ItemQuantity("stick"))
	assert.True(t, s.ContainsItem("wood"))
}

func TestStore_AddItemEntradaInvalida(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())

	cases := []struct {
		name string
		key  string
		qty  int
	}{
		{"cantidad cero", "wood", 0},
		{"cantidad negativa", "wood", -2},
		{"clave vacía", "", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.AddItem(tc.key, tc.qty)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.False(t, s.ContainsItem("wood"), "una entrada inválida no debe crear la clave")
}

func TestStore_ClavesSensiblesAMayusculas(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())
	require.NoError(t, s.AddItem("Wood", 1))

	assert.False(t, s.ContainsItem("wood"))
	assert.Equal(t, 0, s.ItemQuantity("wood"))
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveItem
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_RemoveItemParcial(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())
	require.NoError(t, s.AddItem("iron", 5))

	removed, err := s.RemoveItem("iron", 3)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStack{Key: "iron", Quantity: 3}, removed)
	assert.Equal(t, 2, s.ItemQuantity("iron"))
}

// Escenario 3: retirar más de lo almacenado se recorta a lo que hay.
func TestStore_RemoveItemRecortaAlAlmacenado(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())
	require.NoError(t, s.AddItem("gold", 10))

	removed, err := s.RemoveItem("gold", 15)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStack{Key: "gold", Quantity: 10}, removed)
	assert.False(t, s.ContainsItem("gold"))
	assert.Equal(t, 0, s.ItemQuantity("gold"))
}

func TestStore_RemoveItemExactoEliminaEntrada(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())
	require.NoError(t, s.AddItem("gold", 4))

	_, err := s.RemoveItem("gold", 4)
	require.NoError(t, err)
	assert.False(t, s.ContainsItem("gold"))

	count := 0
	for range s.All() {
		count++
	}
	assert.Zero(t, count, "no deben quedar entradas con cantidad 0")
}

func TestStore_RemoveItemErrores(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())
	require.NoError(t, s.AddItem("gold", 1))

	_, err := s.RemoveItem("diamond", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.RemoveItem("gold", 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.RemoveItem("", 1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 1, s.ItemQuantity("gold"))
}

// itemQuantity(k) = suma agregada − suma retirada (recortada en 0).
func TestStore_ContabilidadDeCantidades(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())
	ops := []struct {
		add    bool
		qty    int
		expect int
	}{
		{true, 4, 4},
		{true, 6, 10},
		{false, 3, 7},
		{true, 1, 8},
		{false, 20, 0},
		{true, 2, 2},
	}
	for i, op := range ops {
		if op.add {
			require.NoError(t, s.AddItem("coal", op.qty), "paso %d", i)
		} else {
			_, err := s.RemoveItem("coal", op.qty)
			require.NoError(t, err, "paso %d", i)
		}
		assert.Equal(t, op.expect, s.ItemQuantity("coal"), "paso %d", i)
	}
}

func TestStore_Clear(t *testing.T) {
	s := chest.NewStore(chest.MaxTotalQuantity(10))
	require.NoError(t, s.AddItem("dirt", 10))
	require.True(t, s.IsFull())

	s.Clear()
	assert.False(t, s.ContainsItem("dirt"))
	assert.False(t, s.IsFull())
	require.NoError(t, s.AddItem("dirt", 10), "tras Clear el total debe volver a 0")
}

func TestStore_AddItemDesbordamiento(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())
	require.NoError(t, s.AddItem("a", math.MaxInt))

	require.ErrorIs(t, s.AddItem("a", 1), domain.ErrCapacityExceeded)
	assert.Equal(t, math.MaxInt, s.ItemQuantity("a"))
	assert.True(t, s.ContainsItem("a"))

	require.ErrorIs(t, s.AddItem("b", 1), domain.ErrCapacityExceeded, "el total desbordaría")
	assert.False(t, s.ContainsItem("b"))

	limited := chest.NewStore(chest.MaxTotalQuantity(1000))
	require.NoError(t, limited.AddItem("wood", 5))
	require.ErrorIs(t, limited.AddItem("gold", math.MaxInt), domain.ErrCapacityExceeded)
	assert.False(t, limited.ContainsItem("gold"))
	assert.False(t, limited.IsFull())
	assert.True(t, decimal.RequireFromString("0.5").Equal(limited.Usage()), "got %s", limited.Usage())
}

func TestStore_RestoreIgnoraCapacidad(t *testing.T) {
	s := chest.NewStore(chest.MaxTotalQuantity(10))
	require.NoError(t, s.AddItem("dirt", 1))

	require.NoError(t, s.Restore(map[string]int{"a": 10, "b": 5}))
	assert.Equal(t, 10, s.ItemQuantity("a"))
	assert.Equal(t, 5, s.ItemQuantity("b"))
	assert.False(t, s.ContainsItem("dirt"))
	assert.True(t, s.IsFull())

	require.NoError(t, s.Restore(nil))
	assert.False(t, s.IsFull())
	require.NoError(t, s.AddItem("dirt", 1))
}

func TestStore_RestoreInvalidoNoMuta(t *testing.T) {
	s := chest.NewStore(chest.Unbounded())
	require.NoError(t, s.AddItem("wood", 2))

	require.ErrorIs(t, s.Restore(map[string]int{"a": 0}), domain.ErrInvalidInput)
	require.ErrorIs(t, s.Restore(map[string]int{"": 1}), domain.ErrInvalidInput)
	require.ErrorIs(t, s.Restore(map[string]int{"a": math.MaxInt, "b": 1}), domain.ErrCapacityExceeded)
	assert.Equal(t, 2, s.ItemQuantity("wood"))
}
