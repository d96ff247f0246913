package entity

// Recipe es una receta explícita: consume una unidad de cada ingrediente y produce una unidad de Output.
// Un ingrediente repetido exige una unidad por cada aparición.
type Recipe struct {
	Output      string   `yaml:"output" json:"output"`
	Ingredients []string `yaml:"ingredients" json:"ingredients"`
}
