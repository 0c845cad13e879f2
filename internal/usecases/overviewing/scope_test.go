package overviewing

import (
	"testing"

	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveScope(t *testing.T) {
	activeProducts := []*domain.Product{
		{ID: "p1", Name: "Curso"},
		{ID: "p2", Name: "Mentoria"},
	}

	tests := []struct {
		name           string
		selection      []string
		activeProducts []*domain.Product
		expected       []string
	}{
		{
			name:           "Seleção vazia - materializa todos os produtos ativos",
			selection:      nil,
			activeProducts: activeProducts,
			expected:       []string{"p1", "p2"},
		},
		{
			name:           "Seleção explícita - passa adiante sem validação",
			selection:      []string{"p2", "p9"},
			activeProducts: activeProducts,
			expected:       []string{"p2", "p9"},
		},
		{
			name:           "Seller sem produto ativo e sem seleção - escopo vazio",
			selection:      nil,
			activeProducts: nil,
			expected:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveScope(tt.selection, tt.activeProducts))
		})
	}
}
