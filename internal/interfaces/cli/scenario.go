package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/chestcraft/internal/domain"
	"github.com/jhoicas/chestcraft/internal/domain/entity"
)

// Scenario archivo YAML con el contenido inicial del cofre y los pasos a ejecutar.
//
//	name: taller
//	capacity: {policy: slots, limit: 3}
//	items:
//	  - {key: wood, quantity: 3}
//	steps:
//	  - craft: {output: stick, ingredients: [wood]}
//	  - remove: {key: wood, quantity: 10}
//	  - query: {min_quantity: 1}
//	  - clear: true
type Scenario struct {
	Name     string             `yaml:"name"`
	Capacity *CapacitySpec      `yaml:"capacity,omitempty"`
	Items    []entity.ItemStack `yaml:"items"`
	Steps    []Step             `yaml:"steps"`
}

// CapacitySpec reemplaza la política de los flags.
type CapacitySpec struct {
	Policy string `yaml:"policy"`
	Limit  int    `yaml:"limit"`
}

// QuerySpec consulta ItemsByQuantity.
type QuerySpec struct {
	MinQuantity int `yaml:"min_quantity"`
}

// Step un paso del escenario; exactamente uno de los campos debe estar presente.
type Step struct {
	Add    *entity.ItemStack `yaml:"add,omitempty"`
	Remove *entity.ItemStack `yaml:"remove,omitempty"`
	Craft  *entity.Recipe    `yaml:"craft,omitempty"`
	Query  *QuerySpec        `yaml:"query,omitempty"`
	Clear  bool              `yaml:"clear,omitempty"`
}

// Operaciones de un paso.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpCraft  = "craft"
	OpQuery  = "query"
	OpClear  = "clear"
)

// Op devuelve la operación del paso.
func (s Step) Op() (string, error) {
	var ops []string
	if s.Add != nil {
		ops = append(ops, OpAdd)
	}
	if s.Remove != nil {
		ops = append(ops, OpRemove)
	}
	if s.Craft != nil {
		ops = append(ops, OpCraft)
	}
	if s.Query != nil {
		ops = append(ops, OpQuery)
	}
	if s.Clear {
		ops = append(ops, OpClear)
	}
	if len(ops) != 1 {
		return "", fmt.Errorf("el paso debe tener exactamente una operación, tiene %v: %w", ops, domain.ErrInvalidInput)
	}
	return ops[0], nil
}

// ParseScenario decodifica y valida un escenario. Campos desconocidos son error.
func ParseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("escenario vacío: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("decodificar escenario: %w", err)
	}
	for i, step := range sc.Steps {
		if _, err := step.Op(); err != nil {
			return nil, fmt.Errorf("paso %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

// LoadScenario lee el escenario desde un archivo.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir escenario: %w", err)
	}
	defer f.Close()
	return ParseScenario(f)
}
