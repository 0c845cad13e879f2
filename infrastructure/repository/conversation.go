package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/agentpay/agentpay-api/infrastructure/database/postgres"
	"github.com/agentpay/agentpay-api/internal/domain"
)

const (
	conversationsTable = "conversations c"
)

// ConversationRepository é a fronteira de leitura de conversas do agente.
type ConversationRepository interface {
	ListBySellerAndPeriod(sellerID string, period domain.Period, productIDs []string) ([]*domain.Conversation, error)
}

type conversationRepository struct {
	conn *postgres.Connection
}

func NewConversationRepository(conn *postgres.Connection) ConversationRepository {
	return &conversationRepository{
		conn: conn,
	}
}

func (r *conversationRepository) ListBySellerAndPeriod(sellerID string, period domain.Period, productIDs []string) ([]*domain.Conversation, error) {
	queryBuilder := squirrel.
		Select("c.id, c.seller_id, c.product_id, c.customer_name, c.conversation_status, c.created_at, c.updated_at").
		From(conversationsTable).
		Where(squirrel.Eq{"c.seller_id": sellerID}).
		Where(squirrel.Expr("c.created_at::date >= ?", period.Start.Format(time.DateOnly))).
		Where(squirrel.Expr("c.created_at::date <= ?", period.End.Format(time.DateOnly))).
		OrderBy("c.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(productIDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.product_id": productIDs})
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

	conversations := make([]*domain.Conversation, 0)
	for rows.Next() {
		conversation := &domain.Conversation{}
		err := rows.Scan(
			&conversation.ID,
			&conversation.SellerID,
			&conversation.ProductID,
			&conversation.CustomerName,
			&conversation.Status,
			&conversation.CreatedAt,
			&conversation.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conversa: %w", err)
		}
		conversations = append(conversations, conversation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return conversations, nil
}
