package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/agentpay/agentpay-api/infrastructure/database/postgres"
	"github.com/agentpay/agentpay-api/internal/domain"
)

const (
	usersTable = "users"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	UpdateUser(user *domain.User) error
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(userID string) (*domain.User, error)
	ListUser() ([]*domain.User, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("id", "name", "lastname", "email", "password_hash", "active", "role_id").
		Values(user.ID, user.Name, user.Lastname, user.Email, user.PasswordHash, user.Active, user.RoleID).
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.conn.Exec(usersSQL, usersArgs...)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(user *domain.User) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		queryBuilder = queryBuilder.Set("name", user.Name)
	}

	if user.Lastname != "" {
		queryBuilder = queryBuilder.Set("lastname", user.Lastname)
	}

	if user.Email != "" {
		queryBuilder = queryBuilder.Set("email", user.Email)
	}

	if user.PasswordHash != "" {
		queryBuilder = queryBuilder.Set("password_hash", user.PasswordHash)
	}

	if user.RoleID != 0 {
		queryBuilder = queryBuilder.Set("role_id", user.RoleID)
	}

	if user.AvatarURL != nil {
		queryBuilder = queryBuilder.Set("avatar_url", user.AvatarURL)
	}

	// Ponteiro para string vazia limpa o token (coluna vai a NULL)
	if user.HotmartToken != nil {
		queryBuilder = queryBuilder.Set("hotmart_token", nullableToken(user.HotmartToken))
	}

	if user.KiwifyToken != nil {
		queryBuilder = queryBuilder.Set("kiwify_token", nullableToken(user.KiwifyToken))
	}

	if user.Deleted {
		queryBuilder = queryBuilder.
			Set("deleted", user.Deleted).
			Set("deleted_at", user.DeletedAt)
	}

	queryBuilder = queryBuilder.Set("updated_at", squirrel.Expr("NOW()"))

	usersSQL, usersArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(usersSQL, usersArgs...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	return r.getUser(squirrel.Eq{"email": email, "deleted": false})
}

func (r *userRepository) GetUserByID(userID string) (*domain.User, error) {
	return r.getUser(squirrel.Eq{"id": userID, "deleted": false})
}

func (r *userRepository) ListUser() ([]*domain.User, error) {
	query, args, err := r.selectUsers().
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return users, nil
}

func (r *userRepository) getUser(where squirrel.Eq) (*domain.User, error) {
	query, args, err := r.selectUsers().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) selectUsers() squirrel.SelectBuilder {
	return squirrel.
		Select("id, name, lastname, email, password_hash, active, role_id, avatar_url, hotmart_token, kiwify_token, deleted, deleted_at, created_at, updated_at").
		From(usersTable).
		PlaceholderFormat(squirrel.Dollar)
}

func nullableToken(token *string) any {
	if *token == "" {
		return nil
	}
	return *token
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.AvatarURL,
		&user.HotmartToken,
		&user.KiwifyToken,
		&user.Deleted,
		&user.DeletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
