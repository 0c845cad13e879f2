package domain

import "time"

// Status de sessão reportados pela ponte de WhatsApp. "open" é a única
// sessão considerada ativa nos cards do dashboard.
const (
	WhatsappStatusOpen       = "open"
	WhatsappStatusConnecting = "connecting"
	WhatsappStatusClosed     = "closed"
)

// WhatsappNumber é um número conectado via a ponte externa. InstanceName
// identifica a sessão no serviço de ponte.
type WhatsappNumber struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"seller_id"`
	PhoneNumber  string    `json:"phone_number"`
	DisplayName  *string   `json:"display_name"`
	InstanceName string    `json:"instance_name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
