package integrating

import (
	"testing"

	"github.com/agentpay/agentpay-api/infrastructure/repository/mocks"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestIntegrator(t *testing.T) (PlatformIntegrator, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userRepo := mocks.NewMockUserRepository(ctrl)

	return NewService(userRepo), userRepo
}

func tokenPtr(token string) *string {
	return &token
}

func TestListPlatformIntegrations(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(userRepo *mocks.MockUserRepository)
		validate func(t *testing.T, integrations []*domain.PlatformIntegration, err error)
	}{
		{
			name: "Nenhum token configurado - as duas plataformas aparecem desconfiguradas",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(&domain.User{ID: "seller-1"}, nil)
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.NoError(t, err)
				assert.Len(t, integrations, 2)

				assert.Equal(t, domain.PlatformHotmart, integrations[0].Platform)
				assert.False(t, integrations[0].Configured)
				assert.Nil(t, integrations[0].Token)

				assert.Equal(t, domain.PlatformKiwify, integrations[1].Platform)
				assert.False(t, integrations[1].Configured)
				assert.Nil(t, integrations[1].Token)
			},
		},
		{
			name: "Token de Hotmart configurado - só a Hotmart aparece configurada",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(&domain.User{
					ID:           "seller-1",
					HotmartToken: tokenPtr("hm-token-123"),
				}, nil)
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.NoError(t, err)
				assert.True(t, integrations[0].Configured)
				assert.Equal(t, "hm-token-123", *integrations[0].Token)
				assert.False(t, integrations[1].Configured)
			},
		},
		{
			name: "Seller inexistente",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(nil, nil)
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.ErrorIs(t, err, ErrSellerNotFound)
				assert.Nil(t, integrations)
			},
		},
		{
			name: "Falha no banco",
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.Error(t, err)
				assert.Nil(t, integrations)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo := newTestIntegrator(t)
			tt.setup(userRepo)

			integrations, err := service.ListPlatformIntegrations("seller-1")
			tt.validate(t, integrations, err)
		})
	}
}

func TestUpdatePlatformTokens(t *testing.T) {
	tests := []struct {
		name     string
		request  *domain.UpdatePlatformTokensRequest
		setup    func(userRepo *mocks.MockUserRepository)
		validate func(t *testing.T, integrations []*domain.PlatformIntegration, err error)
	}{
		{
			name:    "Configura o token da Hotmart sem tocar no da Kiwify",
			request: &domain.UpdatePlatformTokensRequest{HotmartToken: tokenPtr("hm-novo")},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(&domain.User{
					ID:          "seller-1",
					KiwifyToken: tokenPtr("kw-existente"),
				}, nil)
				userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(user *domain.User) error {
					assert.Equal(t, "hm-novo", *user.HotmartToken)
					assert.Equal(t, "kw-existente", *user.KiwifyToken)
					return nil
				})
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.NoError(t, err)
				assert.True(t, integrations[0].Configured)
				assert.Equal(t, "hm-novo", *integrations[0].Token)
				assert.True(t, integrations[1].Configured)
			},
		},
		{
			name:    "String vazia remove o token",
			request: &domain.UpdatePlatformTokensRequest{HotmartToken: tokenPtr("")},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(&domain.User{
					ID:           "seller-1",
					HotmartToken: tokenPtr("hm-antigo"),
				}, nil)
				userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(user *domain.User) error {
					assert.Equal(t, "", *user.HotmartToken)
					return nil
				})
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.NoError(t, err)
				assert.False(t, integrations[0].Configured)
				assert.Nil(t, integrations[0].Token)
			},
		},
		{
			name:    "Campo ausente mantém os tokens atuais",
			request: &domain.UpdatePlatformTokensRequest{},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(&domain.User{
					ID:           "seller-1",
					HotmartToken: tokenPtr("hm-existente"),
				}, nil)
				userRepo.EXPECT().UpdateUser(gomock.Any()).DoAndReturn(func(user *domain.User) error {
					assert.Equal(t, "hm-existente", *user.HotmartToken)
					assert.Nil(t, user.KiwifyToken)
					return nil
				})
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.NoError(t, err)
				assert.True(t, integrations[0].Configured)
				assert.False(t, integrations[1].Configured)
			},
		},
		{
			name:    "Seller inexistente",
			request: &domain.UpdatePlatformTokensRequest{HotmartToken: tokenPtr("hm-novo")},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(nil, nil)
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.ErrorIs(t, err, ErrSellerNotFound)
				assert.Nil(t, integrations)
			},
		},
		{
			name:    "Falha ao gravar",
			request: &domain.UpdatePlatformTokensRequest{KiwifyToken: tokenPtr("kw-novo")},
			setup: func(userRepo *mocks.MockUserRepository) {
				userRepo.EXPECT().GetUserByID("seller-1").Return(&domain.User{ID: "seller-1"}, nil)
				userRepo.EXPECT().UpdateUser(gomock.Any()).Return(errors.New("connection refused"))
			},
			validate: func(t *testing.T, integrations []*domain.PlatformIntegration, err error) {
				assert.Error(t, err)
				assert.Nil(t, integrations)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo := newTestIntegrator(t)
			tt.setup(userRepo)

			integrations, err := service.UpdatePlatformTokens("seller-1", tt.request)
			tt.validate(t, integrations, err)
		})
	}
}
