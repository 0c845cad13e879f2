package overviewing

import "github.com/agentpay/agentpay-api/internal/domain"

// EffectiveScope resolve o conjunto efetivo de produtos da agregação:
// seleção vazia materializa para todos os produtos ativos do seller; seleção
// explícita passa adiante sem validação (o escopo por seller_id nas queries
// impede vazamento entre tenants). Um filtro vazio nunca significa "nenhum":
// só sai vazio quando o seller não tem produto ativo.
func EffectiveScope(selection []string, activeProducts []*domain.Product) []string {
	if len(selection) > 0 {
		return selection
	}

	scope := make([]string, 0, len(activeProducts))
	for _, product := range activeProducts {
		scope = append(scope, product.ID)
	}

	return scope
}
