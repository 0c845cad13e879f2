package authenticating

import (
	"testing"

	"github.com/agentpay/agentpay-api/infrastructure/repository/mocks"
	"github.com/agentpay/agentpay-api/internal/config"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T) (Authenticator, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := mocks.NewMockUserRepository(ctrl)
	cfg := &config.Config{SecretKey: "segredo-de-teste"}

	return NewService(userRepo, cfg), userRepo
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestLoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(t *testing.T, userRepo *mocks.MockUserRepository)
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Login válido - devolve token assinado com as claims do usuário",
			email:    "Demo@AgentPay.com.br",
			password: "Senha@Forte1",
			setup: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				// O email é normalizado antes da consulta
				userRepo.EXPECT().GetUserByEmail("demo@agentpay.com.br").Return(&domain.User{
					ID:           "user-1",
					Name:         "Demo",
					Email:        "demo@agentpay.com.br",
					PasswordHash: hashPassword(t, "Senha@Forte1"),
					Active:       true,
					RoleID:       RoleSeller,
				}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "Usuário não encontrado",
			email:    "ninguem@agentpay.com.br",
			password: "qualquer",
			setup: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("ninguem@agentpay.com.br").Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
				assert.Empty(t, token)
			},
		},
		{
			name:     "Conta desativada",
			email:    "demo@agentpay.com.br",
			password: "Senha@Forte1",
			setup: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("demo@agentpay.com.br").Return(&domain.User{
					ID:           "user-1",
					PasswordHash: hashPassword(t, "Senha@Forte1"),
					Active:       false,
				}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
			},
		},
		{
			name:     "Senha incorreta",
			email:    "demo@agentpay.com.br",
			password: "senha-errada",
			setup: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("demo@agentpay.com.br").Return(&domain.User{
					ID:           "user-1",
					PasswordHash: hashPassword(t, "Senha@Forte1"),
					Active:       true,
				}, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "Email ausente",
			email:    "",
			password: "qualquer",
			setup:    func(t *testing.T, userRepo *mocks.MockUserRepository) {},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
			},
		},
		{
			name:     "Erro de banco na consulta",
			email:    "demo@agentpay.com.br",
			password: "Senha@Forte1",
			setup: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByEmail("demo@agentpay.com.br").Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, token string, err error) {
				assert.Error(t, err)
				authErr := &AuthError{}
				assert.ErrorAs(t, err, &authErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo := newTestAuthenticator(t)
			tt.setup(t, userRepo)

			token, err := service.LoginUser(tt.email, tt.password)

			tt.validate(t, token, err)
		})
	}
}

func TestLoginUser_TokenValidaDeVolta(t *testing.T) {
	service, userRepo := newTestAuthenticator(t)

	userRepo.EXPECT().GetUserByEmail("demo@agentpay.com.br").Return(&domain.User{
		ID:           "user-1",
		Name:         "Demo",
		Email:        "demo@agentpay.com.br",
		PasswordHash: hashPassword(t, "Senha@Forte1"),
		Active:       true,
		RoleID:       RoleSeller,
	}, nil)

	token, err := service.LoginUser("demo@agentpay.com.br", "Senha@Forte1")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, RoleSeller, claims.UserRoleID)
}

func TestValidateToken_TokenAdulterado(t *testing.T) {
	service, _ := newTestAuthenticator(t)

	_, err := service.ValidateToken("cabecalho.corpo.assinatura")

	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	t.Run("Cadastro válido - senha sai com hash e role padrão de seller", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByEmail("novo@agentpay.com.br").Return(nil, nil)

		var created *domain.User
		userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user *domain.User) (*domain.User, error) {
			created = user
			return user, nil
		})

		user, err := service.CreateUser(&domain.User{
			Name:         "Novo",
			Lastname:     "Seller",
			Email:        " Novo@AgentPay.com.br ",
			PasswordHash: "Senha@Forte1",
		})

		assert.NoError(t, err)
		assert.Equal(t, created, user)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "novo@agentpay.com.br", user.Email)
		assert.Equal(t, RoleSeller, user.RoleID)
		assert.False(t, user.Active)
		assert.NotEqual(t, "Senha@Forte1", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha@Forte1")))
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByEmail("demo@agentpay.com.br").Return(&domain.User{ID: "user-1"}, nil)

		_, err := service.CreateUser(&domain.User{
			Name:         "Demo",
			Lastname:     "Seller",
			Email:        "demo@agentpay.com.br",
			PasswordHash: "Senha@Forte1",
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Dados obrigatórios ausentes", func(t *testing.T) {
		service, _ := newTestAuthenticator(t)

		_, err := service.CreateUser(&domain.User{Email: "demo@agentpay.com.br"})

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	service, _ := newTestAuthenticator(t)

	tests := []struct {
		name      string
		password  string
		expectErr bool
	}{
		{name: "Senha forte", password: "Senha@Forte1", expectErr: false},
		{name: "Curta demais", password: "S@f1", expectErr: true},
		{name: "Sem maiúscula", password: "senha@forte1", expectErr: true},
		{name: "Sem minúscula", password: "SENHA@FORTE1", expectErr: true},
		{name: "Sem número", password: "Senha@Forte", expectErr: true},
		{name: "Sem caractere especial", password: "SenhaForte1", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	t.Run("Troca válida - nova senha persiste com hash", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByID("user-1").Return(&domain.User{
			ID:           "user-1",
			PasswordHash: hashPassword(t, "Senha@Antiga1"),
		}, nil)

		var updated *domain.User
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(user *domain.User) error {
			updated = user
			return nil
		})

		err := service.ChangePassword("user-1", "Senha@Antiga1", "Senha@Nova22")

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("Senha@Nova22")))
	})

	t.Run("Senha atual incorreta", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByID("user-1").Return(&domain.User{
			ID:           "user-1",
			PasswordHash: hashPassword(t, "Senha@Antiga1"),
		}, nil)

		err := service.ChangePassword("user-1", "senha-errada", "Senha@Nova22")

		assert.Error(t, err)
	})

	t.Run("Nova senha igual à atual", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByID("user-1").Return(&domain.User{
			ID:           "user-1",
			PasswordHash: hashPassword(t, "Senha@Antiga1"),
		}, nil)

		err := service.ChangePassword("user-1", "Senha@Antiga1", "Senha@Antiga1")

		assert.ErrorIs(t, err, ErrSamePassword)
	})

	t.Run("Nova senha fraca", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByID("user-1").Return(&domain.User{
			ID:           "user-1",
			PasswordHash: hashPassword(t, "Senha@Antiga1"),
		}, nil)

		err := service.ChangePassword("user-1", "Senha@Antiga1", "fraca")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "a senha deve conter")
	})

	t.Run("Usuário não encontrado", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByID("user-9").Return(nil, nil)

		err := service.ChangePassword("user-9", "qualquer", "Senha@Nova22")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestGenerateStrongPassword(t *testing.T) {
	t.Run("Admin gera senha forte para o alvo", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByID("admin-1").Return(&domain.User{ID: "admin-1", RoleID: RoleAdmin}, nil)
		userRepo.EXPECT().GetUserByID("user-1").Return(&domain.User{ID: "user-1", RoleID: RoleSeller}, nil)

		var updated *domain.User
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(user *domain.User) error {
			updated = user
			return nil
		})

		password, err := service.GenerateStrongPassword("admin-1", "user-1")

		assert.NoError(t, err)
		assert.Len(t, password, 12)
		assert.NoError(t, service.ValidatePasswordStrength(password))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)))
	})

	t.Run("Solicitante sem perfil de admin", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		userRepo.EXPECT().GetUserByID("user-2").Return(&domain.User{ID: "user-2", RoleID: RoleSeller}, nil)

		_, err := service.GenerateStrongPassword("user-2", "user-1")

		assert.ErrorIs(t, err, ErrNoAdminPrivileges)
		assert.True(t, IsAuthorizationError(err))
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Atualização parcial - só os campos informados mudam", func(t *testing.T) {
		service, userRepo := newTestAuthenticator(t)

		name := "Renomeado"
		active := true

		userRepo.EXPECT().GetUserByID("user-1").Return(&domain.User{
			ID:       "user-1",
			Name:     "Original",
			Lastname: "Seller",
			Active:   false,
			RoleID:   RoleSeller,
		}, nil)

		var updated *domain.User
		userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(user *domain.User) error {
			updated = user
			return nil
		})

		err := service.UpdateUser(&domain.UpdateUserRequest{
			ID:     "user-1",
			Name:   &name,
			Active: &active,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Renomeado", updated.Name)
		assert.Equal(t, "Seller", updated.Lastname)
		assert.True(t, updated.Active)
		assert.Equal(t, RoleSeller, updated.RoleID)
	})

	t.Run("ID ausente", func(t *testing.T) {
		service, _ := newTestAuthenticator(t)

		err := service.UpdateUser(&domain.UpdateUserRequest{})

		assert.Error(t, err)
	})
}
