package domain

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusRemoved  ProductStatus = "removed"
)

// Product é um item do catálogo do seller. Apenas produtos ativos compõem o
// escopo padrão do dashboard e o lookup de nomes.
type Product struct {
	ID          string        `json:"id"`
	SellerID    string        `json:"seller_id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	PageURL     *string       `json:"page_url"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PageURL     *string `json:"page_url"`
}

type UpdateProductRequest struct {
	ID          string         `json:"id"`
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	PageURL     *string        `json:"page_url"`
	Status      *ProductStatus `json:"status"`
}
