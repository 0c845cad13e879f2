package overviewing

import (
	"testing"
	"time"

	"github.com/agentpay/agentpay-api/infrastructure/repository/mocks"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGetDashboardMetrics(t *testing.T) {
	sellerID := "seller-1"
	period := domain.Period{
		Start: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.Local),
	}

	activeProducts := []*domain.Product{
		{ID: "p1", Name: "Curso", Status: domain.ProductStatusActive},
		{ID: "p2", Name: "Mentoria", Status: domain.ProductStatusActive},
	}

	tests := []struct {
		name      string
		selection []string
		setup     func(dealRepo *mocks.MockDealRepository, conversationRepo *mocks.MockConversationRepository, productRepo *mocks.MockProductRepository, whatsappRepo *mocks.MockWhatsappNumberRepository)
		validate  func(t *testing.T, metrics *domain.DashboardMetrics, err error)
	}{
		{
			name:      "Sem seleção - escopo vira todos os produtos ativos e buscas usam esse escopo",
			selection: nil,
			setup: func(dealRepo *mocks.MockDealRepository, conversationRepo *mocks.MockConversationRepository, productRepo *mocks.MockProductRepository, whatsappRepo *mocks.MockWhatsappNumberRepository) {
				productRepo.EXPECT().ListActiveBySeller(sellerID).Return(activeProducts, nil)
				dealRepo.EXPECT().ListBySellerAndPeriod(sellerID, period, []string{"p1", "p2"}).Return([]*domain.Deal{
					{ID: "d1", ProductID: "p1", Status: domain.DealStatusWon, CreatedAt: period.Start},
				}, nil)
				conversationRepo.EXPECT().ListBySellerAndPeriod(sellerID, period, []string{"p1", "p2"}).Return(nil, nil)
				whatsappRepo.EXPECT().ListOpenBySeller(sellerID).Return([]*domain.WhatsappNumber{
					{ID: "w1", Status: domain.WhatsappStatusOpen},
				}, nil)
			},
			validate: func(t *testing.T, metrics *domain.DashboardMetrics, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 1, metrics.Cards.TotalDeals)
				assert.Equal(t, 1, metrics.Cards.DealsWon)
				assert.Equal(t, 2, metrics.Cards.ActiveProducts)
				assert.Equal(t, 1, metrics.Cards.ActiveWhatsapp)
				assert.Len(t, metrics.ByProduct, 2)
				assert.Equal(t, "Curso", metrics.ByProduct[0].Product)
			},
		},
		{
			name:      "Seleção explícita - escopo passa direto para as buscas",
			selection: []string{"p2"},
			setup: func(dealRepo *mocks.MockDealRepository, conversationRepo *mocks.MockConversationRepository, productRepo *mocks.MockProductRepository, whatsappRepo *mocks.MockWhatsappNumberRepository) {
				productRepo.EXPECT().ListActiveBySeller(sellerID).Return(activeProducts, nil)
				dealRepo.EXPECT().ListBySellerAndPeriod(sellerID, period, []string{"p2"}).Return(nil, nil)
				conversationRepo.EXPECT().ListBySellerAndPeriod(sellerID, period, []string{"p2"}).Return(nil, nil)
				whatsappRepo.EXPECT().ListOpenBySeller(sellerID).Return(nil, nil)
			},
			validate: func(t *testing.T, metrics *domain.DashboardMetrics, err error) {
				assert.NoError(t, err)
				assert.Equal(t, []domain.ProductDealCount{
					{ProductID: "p2", Product: "Mentoria", Count: 0},
				}, metrics.ByProduct)
			},
		},
		{
			name:      "Falha nas buscas - degrada para métricas zeradas sem propagar erro",
			selection: nil,
			setup: func(dealRepo *mocks.MockDealRepository, conversationRepo *mocks.MockConversationRepository, productRepo *mocks.MockProductRepository, whatsappRepo *mocks.MockWhatsappNumberRepository) {
				productRepo.EXPECT().ListActiveBySeller(sellerID).Return(nil, errors.New("connection refused"))
				dealRepo.EXPECT().ListBySellerAndPeriod(sellerID, period, []string{}).Return(nil, errors.New("connection refused"))
				conversationRepo.EXPECT().ListBySellerAndPeriod(sellerID, period, []string{}).Return(nil, errors.New("connection refused"))
				whatsappRepo.EXPECT().ListOpenBySeller(sellerID).Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, metrics *domain.DashboardMetrics, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 0, metrics.Cards.TotalDeals)
				assert.Equal(t, 0.0, metrics.Cards.ClosedValue)
				assert.Empty(t, metrics.ByProduct)
				assert.Len(t, metrics.ConversationStatus, 6)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			dealRepo := mocks.NewMockDealRepository(ctrl)
			conversationRepo := mocks.NewMockConversationRepository(ctrl)
			productRepo := mocks.NewMockProductRepository(ctrl)
			whatsappRepo := mocks.NewMockWhatsappNumberRepository(ctrl)

			tt.setup(dealRepo, conversationRepo, productRepo, whatsappRepo)

			service := NewService(dealRepo, conversationRepo, productRepo, whatsappRepo)
			metrics, err := service.GetDashboardMetrics(sellerID, period, tt.selection)

			tt.validate(t, metrics, err)
		})
	}
}
