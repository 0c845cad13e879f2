package scheduler

import (
	"testing"
	"time"

	agentflowdomain "github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/domain"
	agentflowmocks "github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/mocks"
	repomocks "github.com/agentpay/agentpay-api/infrastructure/repository/mocks"
	"github.com/agentpay/agentpay-api/internal/config"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(t *testing.T) (*WhatsappStatusSyncService, *repomocks.MockWhatsappNumberRepository, *agentflowmocks.MockAgentFlowIntegrator) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	whatsappRepo := repomocks.NewMockWhatsappNumberRepository(ctrl)
	agentFlow := agentflowmocks.NewMockAgentFlowIntegrator(ctrl)

	cfg := &config.Config{
		WhatsappStatusSync: config.WhatsappStatusSync{
			CronSchedule:        "0 */6 * * *",
			RequestDelaySeconds: 0,
			Enabled:             true,
		},
	}

	return NewWhatsappStatusSyncService(whatsappRepo, agentFlow, cfg), whatsappRepo, agentFlow
}

func TestSyncNumber(t *testing.T) {
	tests := []struct {
		name            string
		number          *domain.WhatsappNumber
		setup           func(whatsappRepo *repomocks.MockWhatsappNumberRepository, agentFlow *agentflowmocks.MockAgentFlowIntegrator)
		expectedUpdated bool
	}{
		{
			name:   "Sessão caiu - status divergente é atualizado",
			number: &domain.WhatsappNumber{ID: "w1", SellerID: "seller-1", InstanceName: "inst-1", Status: domain.WhatsappStatusOpen},
			setup: func(whatsappRepo *repomocks.MockWhatsappNumberRepository, agentFlow *agentflowmocks.MockAgentFlowIntegrator) {
				agentFlow.EXPECT().GetWhatsappSessionStatus("inst-1").Return(&agentflowdomain.SessionStatusResponse{
					InstanceName: "inst-1",
					Status:       domain.WhatsappStatusClosed,
				}, nil)
				whatsappRepo.EXPECT().UpdateStatus("w1", domain.WhatsappStatusClosed).Return(nil)
			},
			expectedUpdated: true,
		},
		{
			name:   "Status já em dia - nenhuma escrita no banco",
			number: &domain.WhatsappNumber{ID: "w1", SellerID: "seller-1", InstanceName: "inst-1", Status: domain.WhatsappStatusOpen},
			setup: func(whatsappRepo *repomocks.MockWhatsappNumberRepository, agentFlow *agentflowmocks.MockAgentFlowIntegrator) {
				agentFlow.EXPECT().GetWhatsappSessionStatus("inst-1").Return(&agentflowdomain.SessionStatusResponse{
					InstanceName: "inst-1",
					Status:       domain.WhatsappStatusOpen,
				}, nil)
			},
			expectedUpdated: false,
		},
		{
			name:   "Falha na consulta à ponte - número é pulado sem atualização",
			number: &domain.WhatsappNumber{ID: "w1", SellerID: "seller-1", InstanceName: "inst-1", Status: domain.WhatsappStatusOpen},
			setup: func(whatsappRepo *repomocks.MockWhatsappNumberRepository, agentFlow *agentflowmocks.MockAgentFlowIntegrator) {
				agentFlow.EXPECT().GetWhatsappSessionStatus("inst-1").Return(nil, errors.New("timeout na ponte"))
			},
			expectedUpdated: false,
		},
		{
			name:   "Falha na atualização do banco - conta como não atualizado",
			number: &domain.WhatsappNumber{ID: "w1", SellerID: "seller-1", InstanceName: "inst-1", Status: domain.WhatsappStatusConnecting},
			setup: func(whatsappRepo *repomocks.MockWhatsappNumberRepository, agentFlow *agentflowmocks.MockAgentFlowIntegrator) {
				agentFlow.EXPECT().GetWhatsappSessionStatus("inst-1").Return(&agentflowdomain.SessionStatusResponse{
					InstanceName: "inst-1",
					Status:       domain.WhatsappStatusOpen,
				}, nil)
				whatsappRepo.EXPECT().UpdateStatus("w1", domain.WhatsappStatusOpen).Return(errors.New("connection refused"))
			},
			expectedUpdated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, whatsappRepo, agentFlow := newTestSyncService(t)
			tt.setup(whatsappRepo, agentFlow)

			assert.Equal(t, tt.expectedUpdated, service.syncNumber(tt.number))
		})
	}
}

func TestSyncAllStatuses(t *testing.T) {
	t.Run("Percorre todos os números e atualiza só os divergentes", func(t *testing.T) {
		service, whatsappRepo, agentFlow := newTestSyncService(t)

		whatsappRepo.EXPECT().ListAll().Return([]*domain.WhatsappNumber{
			{ID: "w1", InstanceName: "inst-1", Status: domain.WhatsappStatusOpen},
			{ID: "w2", InstanceName: "inst-2", Status: domain.WhatsappStatusConnecting},
		}, nil)

		agentFlow.EXPECT().GetWhatsappSessionStatus("inst-1").Return(&agentflowdomain.SessionStatusResponse{
			InstanceName: "inst-1", Status: domain.WhatsappStatusOpen,
		}, nil)
		agentFlow.EXPECT().GetWhatsappSessionStatus("inst-2").Return(&agentflowdomain.SessionStatusResponse{
			InstanceName: "inst-2", Status: domain.WhatsappStatusOpen,
		}, nil)
		whatsappRepo.EXPECT().UpdateStatus("w2", domain.WhatsappStatusOpen).Return(nil)

		service.syncAllStatuses()

		assert.False(t, service.lastSyncStartedAt.IsZero())
		assert.False(t, service.lastSyncCompletedAt.IsZero())
	})

	t.Run("Falha ao listar números - encerra sem consultar a ponte", func(t *testing.T) {
		service, whatsappRepo, _ := newTestSyncService(t)

		whatsappRepo.EXPECT().ListAll().Return(nil, errors.New("connection refused"))

		service.syncAllStatuses()

		assert.True(t, service.lastSyncCompletedAt.IsZero())
	})

	t.Run("Sem números registrados - encerra cedo", func(t *testing.T) {
		service, whatsappRepo, _ := newTestSyncService(t)

		whatsappRepo.EXPECT().ListAll().Return([]*domain.WhatsappNumber{}, nil)

		service.syncAllStatuses()
	})

	t.Run("Sincronização já em andamento - segunda execução é ignorada", func(t *testing.T) {
		service, _, _ := newTestSyncService(t)

		service.syncMutex.Lock()
		service.syncRunning = true
		service.syncMutex.Unlock()

		// Nenhuma expectativa registrada: a execução deve sair antes de listar
		service.syncAllStatuses()
	})
}

func TestGetStatus_ConcorrenteComSincronizacao(t *testing.T) {
	service, whatsappRepo, agentFlow := newTestSyncService(t)

	whatsappRepo.EXPECT().ListAll().Return([]*domain.WhatsappNumber{
		{ID: "w1", InstanceName: "inst-1", Status: domain.WhatsappStatusOpen},
	}, nil)
	agentFlow.EXPECT().GetWhatsappSessionStatus("inst-1").Return(&agentflowdomain.SessionStatusResponse{
		InstanceName: "inst-1", Status: domain.WhatsappStatusOpen,
	}, nil)

	// Leituras de status durante a sincronização; o detector de corrida acusa
	// acesso sem proteção aos timestamps
	done := make(chan struct{})
	go func() {
		defer close(done)
		service.syncAllStatuses()
	}()

	for i := 0; i < 100; i++ {
		status := service.GetStatus()
		assert.Equal(t, true, status["sync_enabled"])
	}

	<-done
	assert.False(t, service.GetStatus()["last_sync_completed_at"].(time.Time).IsZero())
}

func TestGetStatus(t *testing.T) {
	service, _, _ := newTestSyncService(t)

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 */6 * * *", status["sync_cron"])
	assert.Equal(t, 0, status["sync_request_delay_s"])
}
