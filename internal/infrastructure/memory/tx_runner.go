package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/chestcraft/internal/application/crafting"
	"github.com/jhoicas/chestcraft/internal/domain/chest"
)

// Ensure TxRunner implements crafting.TxRunner.
var _ crafting.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con acceso exclusivo a un cofre en memoria, con Commit implícito
// y Rollback (restauración del snapshot) si el callback falla.
type TxRunner struct {
	mu    sync.RWMutex
	chest *chest.Chest
}

// NewTxRunner construye el runner dueño del cofre. A partir de aquí todo acceso debe pasar por Run o View.
func NewTxRunner(c *chest.Chest) *TxRunner {
	return &TxRunner{chest: c}
}

// Run toma el lock exclusivo, ejecuta fn y, si fn devuelve error, restaura el contenido previo.
func (r *TxRunner) Run(ctx context.Context, fn func(c *chest.Chest) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	before := r.chest.Snapshot()
	if err := fn(r.chest); err != nil {
		if rbErr := r.rollback(before); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		return err
	}
	return nil
}

// View ejecuta fn con el lock de lectura.
func (r *TxRunner) View(ctx context.Context, fn func(c *chest.Chest) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(r.chest)
}

// rollback repone el snapshot sin evaluar la capacidad: el estado previo puede superar el límite.
func (r *TxRunner) rollback(before map[string]int) error {
	return r.chest.Restore(before)
}
