package domain

// AddSessionParams são os parâmetros de criação de uma sessão de WhatsApp na
// ponte.
type AddSessionParams struct {
	SellerID    string `json:"seller_id"`
	PhoneNumber string `json:"phone_number"`
}

// QRCode é o código de pareamento devolvido pela ponte. A ponte às vezes
// devolve o objeto serializado como string; o client normaliza os dois casos.
type QRCode struct {
	Code string `json:"code"`
}

// AddSessionResponse é a resposta da criação de sessão: o nome da instância
// criada e o QR code de pareamento.
type AddSessionResponse struct {
	InstanceName string `json:"instanceName"`
	QRCode       QRCode `json:"qrcode"`
}

// SessionStatusResponse é a resposta da consulta de status de uma sessão.
// "open" indica sessão pareada e ativa.
type SessionStatusResponse struct {
	InstanceName string `json:"instanceName"`
	Status       string `json:"status"`
}
