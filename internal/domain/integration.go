package domain

const (
	PlatformHotmart = "hotmart"
	PlatformKiwify  = "kiwify"
)

// PlatformIntegration é o estado da integração de uma plataforma de
// infoprodutos para o seller. Token só aparece quando a integração está
// configurada.
type PlatformIntegration struct {
	Platform   string  `json:"platform"`
	Configured bool    `json:"configured"`
	Token      *string `json:"token,omitempty"`
}

// UpdatePlatformTokensRequest carrega os tokens enviados pelo seller. Campo
// ausente mantém o token atual; string vazia remove o token.
type UpdatePlatformTokensRequest struct {
	HotmartToken *string `json:"hotmart_token"`
	KiwifyToken  *string `json:"kiwify_token"`
}
