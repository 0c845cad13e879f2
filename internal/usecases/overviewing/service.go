package overviewing

import (
	"sync"

	"github.com/agentpay/agentpay-api/infrastructure/repository"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// Service orquestra a montagem do dashboard: resolve o escopo de produtos,
// dispara as buscas em paralelo e entrega o resultado ao agregador.
type Service struct {
	dealRepository         repository.DealRepository
	conversationRepository repository.ConversationRepository
	productRepository      repository.ProductRepository
	whatsappRepository     repository.WhatsappNumberRepository
}

func NewService(
	dealRepo repository.DealRepository,
	conversationRepo repository.ConversationRepository,
	productRepo repository.ProductRepository,
	whatsappRepo repository.WhatsappNumberRepository,
) Overviewer {
	return &Service{
		dealRepository:         dealRepo,
		conversationRepository: conversationRepo,
		productRepository:      productRepo,
		whatsappRepository:     whatsappRepo,
	}
}

// GetDashboardMetrics computa as métricas do seller para o período e a
// seleção de produtos informados.
//
// Falhas de busca degradam para listas vazias em vez de propagar: o
// dashboard mostra métricas zeradas no lugar de um erro. Esse comportamento
// é intencional e preservado; os repositórios continuam devolvendo erros, o
// descarte acontece só aqui.
func (s *Service) GetDashboardMetrics(sellerID string, period domain.Period, productSelection []string) (*domain.DashboardMetrics, error) {
	// O escopo efetivo depende da lista de produtos ativos, então ela vem
	// antes das demais buscas.
	products, err := s.productRepository.ListActiveBySeller(sellerID)
	if err != nil {
		logrus.WithError(err).WithField("seller_id", sellerID).Warn("overview: erro ao buscar produtos ativos")
		products = []*domain.Product{}
	}

	scope := EffectiveScope(productSelection, products)

	var (
		deals           []*domain.Deal
		conversations   []*domain.Conversation
		whatsappNumbers []*domain.WhatsappNumber
	)

	// As três buscas restantes não têm dependência entre si; o WaitGroup é a
	// barreira antes da agregação.
	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		var err error
		deals, err = s.dealRepository.ListBySellerAndPeriod(sellerID, period, scope)
		if err != nil {
			logrus.WithError(err).WithField("seller_id", sellerID).Warn("overview: erro ao buscar negócios")
			deals = []*domain.Deal{}
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		conversations, err = s.conversationRepository.ListBySellerAndPeriod(sellerID, period, scope)
		if err != nil {
			logrus.WithError(err).WithField("seller_id", sellerID).Warn("overview: erro ao buscar conversas")
			conversations = []*domain.Conversation{}
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		whatsappNumbers, err = s.whatsappRepository.ListOpenBySeller(sellerID)
		if err != nil {
			logrus.WithError(err).WithField("seller_id", sellerID).Warn("overview: erro ao buscar números de whatsapp")
			whatsappNumbers = []*domain.WhatsappNumber{}
		}
	}()

	wg.Wait()

	return Aggregate(deals, conversations, products, whatsappNumbers, scope), nil
}
