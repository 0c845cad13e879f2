package integrating

import (
	"github.com/agentpay/agentpay-api/infrastructure/repository"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/pkg/errors"
)

var ErrSellerNotFound = errors.New("seller não encontrado")

// PlatformIntegrator gerencia os tokens das plataformas de infoprodutos
// (Hotmart, Kiwify) do seller. O token mora na linha do usuário; configurar a
// integração é gravar o token, remover é limpar a coluna.
type PlatformIntegrator interface {
	ListPlatformIntegrations(sellerID string) ([]*domain.PlatformIntegration, error)
	UpdatePlatformTokens(sellerID string, request *domain.UpdatePlatformTokensRequest) ([]*domain.PlatformIntegration, error)
}

type Service struct {
	userRepository repository.UserRepository
}

func NewService(userRepo repository.UserRepository) PlatformIntegrator {
	return &Service{
		userRepository: userRepo,
	}
}

func (s *Service) ListPlatformIntegrations(sellerID string) ([]*domain.PlatformIntegration, error) {
	user, err := s.userRepository.GetUserByID(sellerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSellerNotFound
	}

	return platformIntegrations(user), nil
}

func (s *Service) UpdatePlatformTokens(sellerID string, request *domain.UpdatePlatformTokensRequest) ([]*domain.PlatformIntegration, error) {
	user, err := s.userRepository.GetUserByID(sellerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrSellerNotFound
	}

	// Campo ausente mantém o token atual; string vazia remove
	if request.HotmartToken != nil {
		user.HotmartToken = request.HotmartToken
	}

	if request.KiwifyToken != nil {
		user.KiwifyToken = request.KiwifyToken
	}

	if err := s.userRepository.UpdateUser(user); err != nil {
		return nil, errors.Wrap(err, "erro ao gravar tokens de plataforma")
	}

	return platformIntegrations(user), nil
}

func platformIntegrations(user *domain.User) []*domain.PlatformIntegration {
	return []*domain.PlatformIntegration{
		platformIntegration(domain.PlatformHotmart, user.HotmartToken),
		platformIntegration(domain.PlatformKiwify, user.KiwifyToken),
	}
}

func platformIntegration(platform string, token *string) *domain.PlatformIntegration {
	item := &domain.PlatformIntegration{Platform: platform}
	if token != nil && *token != "" {
		item.Configured = true
		item.Token = token
	}
	return item
}
