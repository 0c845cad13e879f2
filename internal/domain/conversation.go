package domain

import "time"

// Status de conversas. Diferente dos negócios, o conjunto é fechado: a
// distribuição por status sempre emite esses seis buckets, nessa ordem.
const (
	ConversationStatusOpen      = "open"
	ConversationStatusPending   = "pending response"
	ConversationStatusPaused    = "paused"
	ConversationStatusClosed    = "closed"
	ConversationStatusError     = "error"
	ConversationStatusUnhandled = "unhandled message"
)

// ConversationStatuses lista os seis status fixos na ordem de exibição.
var ConversationStatuses = []string{
	ConversationStatusOpen,
	ConversationStatusPending,
	ConversationStatusPaused,
	ConversationStatusClosed,
	ConversationStatusError,
	ConversationStatusUnhandled,
}

// Conversation representa um atendimento de cliente conduzido pelo agente.
type Conversation struct {
	ID           string    `json:"id"`
	SellerID     string    `json:"seller_id"`
	ProductID    string    `json:"product_id"`
	CustomerName *string   `json:"customer_name"`
	Status       string    `json:"conversation_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsCritical indica se a conversa exige atenção do seller: erro, mensagem
// não tratada ou resposta pendente.
func (c *Conversation) IsCritical() bool {
	switch c.Status {
	case ConversationStatusError, ConversationStatusUnhandled, ConversationStatusPending:
		return true
	}
	return false
}
