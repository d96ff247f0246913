package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("ítem no encontrado en el cofre")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrCapacityExceeded   = errors.New("capacidad del cofre excedida")
	ErrMissingIngredients = errors.New("faltan ingredientes para la receta")
)
