package cataloging

import (
	"github.com/agentpay/agentpay-api/infrastructure/repository"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/agentpay/agentpay-api/pkg/utils"
	"github.com/pkg/errors"
)

var (
	ErrProductNotFound    = errors.New("produto não encontrado")
	ErrMissingProductName = errors.New("o nome do produto é obrigatório")
)

// CatalogService gerencia o catálogo de produtos do seller.
type CatalogService interface {
	ListProducts(sellerID string, statuses []domain.ProductStatus) ([]*domain.Product, error)
	GetProduct(sellerID, productID string) (*domain.Product, error)
	CreateProduct(sellerID string, request *domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(sellerID string, request *domain.UpdateProductRequest) (*domain.Product, error)
	RemoveProduct(sellerID, productID string) error
}

type Service struct {
	productRepository repository.ProductRepository
}

func NewService(productRepo repository.ProductRepository) CatalogService {
	return &Service{
		productRepository: productRepo,
	}
}

func (s *Service) ListProducts(sellerID string, statuses []domain.ProductStatus) ([]*domain.Product, error) {
	// Por padrão produtos removidos ficam de fora da listagem
	if len(statuses) == 0 {
		statuses = []domain.ProductStatus{domain.ProductStatusActive, domain.ProductStatusInactive}
	}

	return s.productRepository.ListBySeller(sellerID, statuses)
}

func (s *Service) GetProduct(sellerID, productID string) (*domain.Product, error) {
	product, err := s.productRepository.GetByID(sellerID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return product, nil
}

func (s *Service) CreateProduct(sellerID string, request *domain.CreateProductRequest) (*domain.Product, error) {
	if request.Name == "" {
		return nil, ErrMissingProductName
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar o ID do produto")
	}

	product := &domain.Product{
		ID:          id,
		SellerID:    sellerID,
		Name:        request.Name,
		Description: request.Description,
		PageURL:     request.PageURL,
		Status:      domain.ProductStatusActive,
	}

	if err := s.productRepository.Create(product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *Service) UpdateProduct(sellerID string, request *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.GetProduct(sellerID, request.ID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		product.Name = *request.Name
	}

	if request.Description != nil {
		product.Description = request.Description
	}

	if request.PageURL != nil {
		product.PageURL = request.PageURL
	}

	if request.Status != nil {
		product.Status = *request.Status
	}

	if err := s.productRepository.Update(product); err != nil {
		return nil, err
	}

	return product, nil
}

// RemoveProduct faz remoção lógica: o produto sai do escopo do dashboard mas
// os negócios e conversas que o referenciam permanecem.
func (s *Service) RemoveProduct(sellerID, productID string) error {
	product, err := s.GetProduct(sellerID, productID)
	if err != nil {
		return err
	}

	return s.productRepository.UpdateStatus(sellerID, product.ID, domain.ProductStatusRemoved)
}
