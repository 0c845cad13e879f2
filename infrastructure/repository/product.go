package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/agentpay/agentpay-api/infrastructure/database/postgres"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/lib/pq"
)

const (
	productsTable = "products p"
)

type ProductRepository interface {
	GetByID(sellerID, productID string) (*domain.Product, error)
	ListBySeller(sellerID string, statuses []domain.ProductStatus) ([]*domain.Product, error)
	ListActiveBySeller(sellerID string) ([]*domain.Product, error)
	Create(product *domain.Product) error
	Update(product *domain.Product) error
	UpdateStatus(sellerID, productID string, status domain.ProductStatus) error
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) GetByID(sellerID, productID string) (*domain.Product, error) {
	query, args, err := r.selectProducts().
		Where(squirrel.Eq{"p.id": productID, "p.seller_id": sellerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListBySeller(sellerID string, statuses []domain.ProductStatus) ([]*domain.Product, error) {
	queryBuilder := r.selectProducts().
		Where(squirrel.Eq{"p.seller_id": sellerID}).
		OrderBy("p.created_at DESC")

	if len(statuses) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"p.status": statuses})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

// ListActiveBySeller retorna apenas produtos ativos, que formam o escopo
// padrão do dashboard.
func (r *productRepository) ListActiveBySeller(sellerID string) ([]*domain.Product, error) {
	return r.ListBySeller(sellerID, []domain.ProductStatus{domain.ProductStatusActive})
}

func (r *productRepository) Create(product *domain.Product) error {
	query, args, err := squirrel.
		Insert("products").
		Columns("id", "seller_id", "name", "description", "page_url", "status").
		Values(product.ID, product.SellerID, product.Name, product.Description, product.PageURL, product.Status).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *productRepository) Update(product *domain.Product) error {
	query, args, err := squirrel.
		Update("products").
		Set("name", product.Name).
		Set("description", product.Description).
		Set("page_url", product.PageURL).
		Set("status", product.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": product.ID, "seller_id": product.SellerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *productRepository) UpdateStatus(sellerID, productID string, status domain.ProductStatus) error {
	query, args, err := squirrel.
		Update("products").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID, "seller_id": sellerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *productRepository) selectProducts() squirrel.SelectBuilder {
	return squirrel.
		Select("p.id, p.seller_id, p.name, p.description, p.page_url, p.status, p.created_at, p.updated_at").
		From(productsTable).
		PlaceholderFormat(squirrel.Dollar)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.SellerID,
		&product.Name,
		&product.Description,
		&product.PageURL,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
