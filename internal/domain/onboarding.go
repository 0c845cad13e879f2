package domain

import "time"

// OperationState é o estado de um assistente de onboarding. A máquina tem
// quatro estados: idle (sem marcador), pending, done e error.
type OperationState string

const (
	OperationIdle    OperationState = "idle"
	OperationPending OperationState = "pending"
	OperationDone    OperationState = "done"
	OperationError   OperationState = "error"
)

// OperationKind distingue os dois assistentes de onboarding.
type OperationKind string

const (
	OperationExtraction      OperationKind = "product_extraction"
	OperationWhatsappPairing OperationKind = "whatsapp_pairing"
)

// OperationMarker é o registro durável de uma operação em andamento. Ele
// sobrevive a recarga de página: o cliente consulta o estado pelo marcador,
// não pela chamada HTTP original.
type OperationMarker struct {
	OperationID string         `json:"operation_id"`
	SellerID    string         `json:"seller_id"`
	Kind        OperationKind  `json:"kind"`
	State       OperationState `json:"state"`
	Payload     map[string]any `json:"payload,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ExtractedProduct é o resultado da extração de dados de uma página de
// produto feita pelo serviço externo.
type ExtractedProduct struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	PageURL     string  `json:"page_url"`
}

// PairingInfo é a resposta inicial do pareamento de WhatsApp: o QR code a
// exibir e o nome da instância criada na ponte.
type PairingInfo struct {
	OperationID  string `json:"operation_id"`
	InstanceName string `json:"instance_name"`
	QRCode       string `json:"qrcode"`
}
