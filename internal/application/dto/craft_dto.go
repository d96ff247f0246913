package dto

// CraftResult resultado de una transacción de crafteo.
type CraftResult struct {
	TxID        string         `json:"tx_id"`
	Output      string         `json:"output"`
	Ingredients []string       `json:"ingredients"`
	State       string         `json:"state"`            // success | failed
	Reason      string         `json:"reason,omitempty"` // missing_ingredients, not_found, capacity_exceeded...
	Trail       []string       `json:"trail"`            // estados recorridos
	Chest       map[string]int `json:"chest"`            // contenido tras la transacción
}

// ChestResponse vista serializable del cofre.
type ChestResponse struct {
	Items    map[string]int `json:"items"`
	Total    int            `json:"total"`
	Full     bool           `json:"full"`
	Capacity string         `json:"capacity"`
	UsagePct string         `json:"usage_pct"`
}
