package models

// CartLineItem est un instantané d'article de panier fourni par le client.
// Jamais persisté seul : il est embarqué dans la commande à la création.
type CartLineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// Subtotal retourne le sous-total de la ligne (prix unitaire × quantité)
func (i CartLineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
