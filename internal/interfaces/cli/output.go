package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/chestcraft/internal/application/crafting"
)

// Códigos de salida del CLI.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // pasos fallidos con --fail-on-error
	ExitCommandError = 2 // flags inválidos, escenario ilegible, etc.
)

// ExitError error con código de salida.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError envuelve un error con un código de salida.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extrae el código de salida; ExitFailure si no es un ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response formato estándar de la salida JSON.
type Response struct {
	Status string `json:"status"` // ok | error
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// newPrinter printer localizado para la salida de texto.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.Spanish)
}

// writeJSON escribe la respuesta indentada.
func writeJSON(w io.Writer, resp Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// writeLines escribe cada línea seguida de salto de línea.
func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}

func joinKeys(keys []string) string {
	if len(keys) == 0 {
		return "(ninguno)"
	}
	return strings.Join(keys, ", ")
}

// reasonText descripción legible de la razón de fallo de un crafteo.
func reasonText(reason string) string {
	switch reason {
	case crafting.ReasonMissingIngredients:
		return "faltan ingredientes"
	case crafting.ReasonNotFound:
		return "un ingrediente se agotó al consumir"
	case crafting.ReasonCapacityExceeded:
		return "el cofre no tiene espacio para el resultado"
	case crafting.ReasonInvalidInput:
		return "receta inválida"
	case crafting.ReasonCanceled:
		return "operación cancelada"
	default:
		return "error interno"
	}
}
