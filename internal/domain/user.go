package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User é um seller (ou administrador) da plataforma. O ID do usuário é a
// chave de tenancy: todas as tabelas de dados são escopadas por seller_id.
// Os tokens das plataformas de infoprodutos moram na própria linha do seller;
// nil significa integração não configurada.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	AvatarURL    *string    `json:"avatar_url"`
	HotmartToken *string    `json:"hotmart_token,omitempty"`
	KiwifyToken  *string    `json:"kiwify_token,omitempty"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
	Active    *bool   `json:"active"`
	RoleID    *int    `json:"role_id"`
	AvatarURL *string `json:"avatar_url"`
	Deleted   *bool   `json:"deleted"`
}

type Claims struct {
	UserID        string
	UserName      string
	UserLastname  string
	UserEmail     string
	UserActive    bool
	UserRoleID    int
	UserAvatarURL *string
	jwt.RegisteredClaims
}
