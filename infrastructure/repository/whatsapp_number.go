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
	whatsappNumbersTable = "whatsapp_numbers w"
)

type WhatsappNumberRepository interface {
	ListBySeller(sellerID string) ([]*domain.WhatsappNumber, error)
	ListOpenBySeller(sellerID string) ([]*domain.WhatsappNumber, error)
	ListAll() ([]*domain.WhatsappNumber, error)
	GetByInstanceName(instanceName string) (*domain.WhatsappNumber, error)
	Create(number *domain.WhatsappNumber) error
	UpdateStatus(id, status string) error
}

type whatsappNumberRepository struct {
	conn *postgres.Connection
}

func NewWhatsappNumberRepository(conn *postgres.Connection) WhatsappNumberRepository {
	return &whatsappNumberRepository{
		conn: conn,
	}
}

func (r *whatsappNumberRepository) ListBySeller(sellerID string) ([]*domain.WhatsappNumber, error) {
	return r.list(squirrel.Eq{"w.seller_id": sellerID})
}

// ListOpenBySeller retorna os números com sessão aberta, usados no card de
// WhatsApp ativo do dashboard.
func (r *whatsappNumberRepository) ListOpenBySeller(sellerID string) ([]*domain.WhatsappNumber, error) {
	return r.list(squirrel.Eq{"w.seller_id": sellerID, "w.status": domain.WhatsappStatusOpen})
}

// ListAll retorna todos os números registrados, para a sincronização
// periódica de status de sessão.
func (r *whatsappNumberRepository) ListAll() ([]*domain.WhatsappNumber, error) {
	return r.list(nil)
}

func (r *whatsappNumberRepository) GetByInstanceName(instanceName string) (*domain.WhatsappNumber, error) {
	query, args, err := r.selectNumbers().
		Where(squirrel.Eq{"w.instance_name": instanceName}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	number, err := scanWhatsappNumber(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear número de whatsapp: %w", err)
	}

	return number, nil
}

func (r *whatsappNumberRepository) Create(number *domain.WhatsappNumber) error {
	query, args, err := squirrel.
		Insert("whatsapp_numbers").
		Columns("id", "seller_id", "phone_number", "display_name", "instance_name", "status").
		Values(number.ID, number.SellerID, number.PhoneNumber, number.DisplayName, number.InstanceName, number.Status).
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

func (r *whatsappNumberRepository) UpdateStatus(id, status string) error {
	query, args, err := squirrel.
		Update("whatsapp_numbers").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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

func (r *whatsappNumberRepository) list(where interface{}) ([]*domain.WhatsappNumber, error) {
	queryBuilder := r.selectNumbers().OrderBy("w.created_at DESC")
	if where != nil {
		queryBuilder = queryBuilder.Where(where)
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

	numbers := make([]*domain.WhatsappNumber, 0)
	for rows.Next() {
		number, err := scanWhatsappNumber(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear número de whatsapp: %w", err)
		}
		numbers = append(numbers, number)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return numbers, nil
}

func (r *whatsappNumberRepository) selectNumbers() squirrel.SelectBuilder {
	return squirrel.
		Select("w.id, w.seller_id, w.phone_number, w.display_name, w.instance_name, w.status, w.created_at, w.updated_at").
		From(whatsappNumbersTable).
		PlaceholderFormat(squirrel.Dollar)
}

func scanWhatsappNumber(row rowScanner) (*domain.WhatsappNumber, error) {
	number := &domain.WhatsappNumber{}
	err := row.Scan(
		&number.ID,
		&number.SellerID,
		&number.PhoneNumber,
		&number.DisplayName,
		&number.InstanceName,
		&number.Status,
		&number.CreatedAt,
		&number.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return number, nil
}
