package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/chestcraft/internal/domain/chest"
	"github.com/jhoicas/chestcraft/internal/infrastructure/memory"
)

func TestTxRunner_CommitConservaCambios(t *testing.T) {
	r := memory.NewTxRunner(chest.NewWithCapacity(chest.Unbounded()))

	err := r.Run(context.Background(), func(c *chest.Chest) error {
		return c.AddItem("wood", 3)
	})
	require.NoError(t, err)

	err = r.View(context.Background(), func(c *chest.Chest) error {
		assert.Equal(t, map[string]int{"wood": 3}, c.Snapshot())
		return nil
	})
	require.NoError(t, err)
}

func TestTxRunner_RollbackRestauraSnapshot(t *testing.T) {
	c := chest.NewWithCapacity(chest.MaxDistinctItems(3))
	require.NoError(t, c.AddItem("wood", 3))
	require.NoError(t, c.AddItem("stick", 2))
	r := memory.NewTxRunner(c)

	boom := errors.New("boom")
	err := r.Run(context.Background(), func(c *chest.Chest) error {
		if _, err := c.RemoveItem("wood", 3); err != nil {
			return err
		}
		if err := c.AddItem("sword", 1); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, map[string]int{"wood": 3, "stick": 2}, c.Snapshot())
}

// Un cofre total puede quedar por encima del límite acumulando una clave existente;
// el rollback lo repone igual aunque b ya no cabría como clave nueva.
func TestTxRunner_RollbackPorEncimaDelLimite(t *testing.T) {
	c := chest.NewWithCapacity(chest.MaxTotalQuantity(10))
	require.NoError(t, c.AddItem("b", 1))
	require.NoError(t, c.AddItem("a", 10))
	require.True(t, c.IsFull())
	r := memory.NewTxRunner(c)

	boom := errors.New("boom")
	err := r.Run(context.Background(), func(c *chest.Chest) error {
		if _, err := c.RemoveItem("a", 10); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, map[string]int{"a": 10, "b": 1}, c.Snapshot())
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	r := memory.NewTxRunner(chest.NewWithCapacity(chest.Unbounded()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := r.Run(ctx, func(*chest.Chest) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "no se ejecuta fn con el contexto cancelado")

	err = r.View(ctx, func(*chest.Chest) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

// Con el lock exclusivo no se pierden actualizaciones concurrentes (ejecutar con -race).
func TestTxRunner_EscriturasConcurrentes(t *testing.T) {
	r := memory.NewTxRunner(chest.NewWithCapacity(chest.Unbounded()))
	const workers, perWorker = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = r.Run(context.Background(), func(c *chest.Chest) error {
					return c.AddItem("iron", 1)
				})
				_ = r.View(context.Background(), func(c *chest.Chest) error {
					_ = c.TotalItems()
					return nil
				})
			}
		}()
	}
	wg.Wait()

	_ = r.View(context.Background(), func(c *chest.Chest) error {
		assert.Equal(t, workers*perWorker, c.ItemQuantity("iron"))
		return nil
	})
}
