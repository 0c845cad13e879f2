package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/agentpay/agentpay-api/infrastructure/database/postgres"
	"github.com/agentpay/agentpay-api/internal/domain"
)

const (
	dealsTable = "deals d"
)

// DealRepository é a fronteira de leitura de negócios. Os registros são
// criados por colaboradores externos (webhooks do agente); a API só lê.
type DealRepository interface {
	ListBySellerAndPeriod(sellerID string, period domain.Period, productIDs []string) ([]*domain.Deal, error)
}

type dealRepository struct {
	conn *postgres.Connection
}

func NewDealRepository(conn *postgres.Connection) DealRepository {
	return &dealRepository{
		conn: conn,
	}
}

// ListBySellerAndPeriod retorna os negócios do seller criados dentro do
// período, inclusivo nas duas pontas por dia-calendário, restritos ao escopo
// de produtos quando informado.
func (r *dealRepository) ListBySellerAndPeriod(sellerID string, period domain.Period, productIDs []string) ([]*domain.Deal, error) {
	queryBuilder := squirrel.
		Select("d.id, d.seller_id, d.product_id, d.status, d.customer_name, d.closing_value, d.created_at").
		From(dealsTable).
		Where(squirrel.Eq{"d.seller_id": sellerID}).
		Where(squirrel.Expr("d.created_at::date >= ?", period.Start.Format(time.DateOnly))).
		Where(squirrel.Expr("d.created_at::date <= ?", period.End.Format(time.DateOnly))).
		OrderBy("d.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(productIDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"d.product_id": productIDs})
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

	deals := make([]*domain.Deal, 0)
	for rows.Next() {
		deal := &domain.Deal{}
		err := rows.Scan(
			&deal.ID,
			&deal.SellerID,
			&deal.ProductID,
			&deal.Status,
			&deal.CustomerName,
			&deal.ClosingValue,
			&deal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear negócio: %w", err)
		}
		deals = append(deals, deal)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return deals, nil
}
