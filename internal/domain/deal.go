package domain

import "time"

// Status conhecidos de um negócio. O campo status é livre: valores fora
// dessa lista continuam aparecendo no funil de status.
const (
	DealStatusOpen   = "open"
	DealStatusWon    = "won"
	DealStatusLost   = "lost"
	DealStatusPaused = "paused"
)

// Deal representa uma oportunidade de venda de um seller. O registro é criado
// e atualizado por colaboradores externos (formulários, webhooks); a
// agregação o trata como snapshot imutável.
type Deal struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"seller_id"`
	ProductID    string    `json:"product_id"`
	Status       string    `json:"status"`
	CustomerName *string   `json:"customer_name"`
	ClosingValue *float64  `json:"closing_value"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsWon indica se o negócio foi fechado com sucesso. ClosingValue só é
// significativo para negócios ganhos.
func (d *Deal) IsWon() bool {
	return d.Status == DealStatusWon
}
