package entity

// ItemStack representa una cantidad de un ítem dentro del cofre.
// RemoveItem la devuelve como el par (clave, cantidad retirada).
type ItemStack struct {
	Key      string `yaml:"key" json:"key"`
	Quantity int    `yaml:"quantity" json:"quantity"`
}
