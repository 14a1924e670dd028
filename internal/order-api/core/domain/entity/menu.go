package entity

// MenuItem is a purchasable item as stored in the Menu Store.
type MenuItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"nome"`
	Category string  `json:"categoria"`
	Price    float64 `json:"preco"`
}
