package onboarding

import (
	"context"
	"testing"
	"time"

	agentflowdomain "github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/domain"
	agentflowmocks "github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/mocks"
	repomocks "github.com/agentpay/agentpay-api/infrastructure/repository/mocks"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func newTestService(t *testing.T) (Onboarder, MarkerStore, *agentflowmocks.MockAgentFlowIntegrator, *repomocks.MockWhatsappNumberRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store, _ := newTestStore(t)
	agentFlow := agentflowmocks.NewMockAgentFlowIntegrator(ctrl)
	whatsappRepo := repomocks.NewMockWhatsappNumberRepository(ctrl)

	return NewService(store, agentFlow, whatsappRepo), store, agentFlow, whatsappRepo
}

func TestStartExtraction(t *testing.T) {
	ctx := context.Background()

	t.Run("Extração concluída - marker vai de pending a done com o payload extraído", func(t *testing.T) {
		service, store, agentFlow, _ := newTestService(t)

		agentFlow.EXPECT().ExtractProductData("seller-1", "https://exemplo.com.br/curso").Return(&agentflowdomain.ExtractProductDataResponse{
			Name:        "Curso de Tráfego Pago",
			Description: stringPtr("Turma 2025"),
			Price:       stringPtr("497.00"),
			PageURL:     "https://exemplo.com.br/curso",
		}, nil)

		marker, err := service.StartExtraction(ctx, "seller-1", "https://exemplo.com.br/curso")

		assert.NoError(t, err)
		assert.Equal(t, domain.OperationPending, marker.State)
		assert.Equal(t, domain.OperationExtraction, marker.Kind)
		assert.NotEmpty(t, marker.OperationID)

		// A extração roda em segundo plano; o resultado aparece no marker
		assert.Eventually(t, func() bool {
			current, err := store.Get(ctx, "seller-1", domain.OperationExtraction)
			return err == nil && current != nil && current.State == domain.OperationDone
		}, 2*time.Second, 10*time.Millisecond)

		current, err := store.Get(ctx, "seller-1", domain.OperationExtraction)
		assert.NoError(t, err)
		assert.Equal(t, "Curso de Tráfego Pago", current.Payload["name"])
		assert.Equal(t, "https://exemplo.com.br/curso", current.Payload["page_url"])
	})

	t.Run("Falha na extração - marker registra o erro e não fica pendente", func(t *testing.T) {
		service, store, agentFlow, _ := newTestService(t)

		agentFlow.EXPECT().ExtractProductData("seller-1", "https://exemplo.com.br/curso").
			Return(nil, errors.New("timeout na ponte"))

		_, err := service.StartExtraction(ctx, "seller-1", "https://exemplo.com.br/curso")
		assert.NoError(t, err)

		assert.Eventually(t, func() bool {
			current, err := store.Get(ctx, "seller-1", domain.OperationExtraction)
			return err == nil && current != nil && current.State == domain.OperationError
		}, 2*time.Second, 10*time.Millisecond)

		current, err := store.Get(ctx, "seller-1", domain.OperationExtraction)
		assert.NoError(t, err)
		assert.Contains(t, current.Error, "timeout na ponte")
	})

	t.Run("Marker devolvido é um snapshot - a conclusão em segundo plano não o altera", func(t *testing.T) {
		service, store, agentFlow, _ := newTestService(t)

		agentFlow.EXPECT().ExtractProductData("seller-1", "https://exemplo.com.br/curso").Return(&agentflowdomain.ExtractProductDataResponse{
			Name:    "Curso de Tráfego Pago",
			PageURL: "https://exemplo.com.br/curso",
		}, nil)

		marker, err := service.StartExtraction(ctx, "seller-1", "https://exemplo.com.br/curso")
		assert.NoError(t, err)

		// Lê o marker devolvido continuamente enquanto a extração termina; o
		// detector de corrida acusa qualquer escrita concorrente nele
		assert.Eventually(t, func() bool {
			assert.Equal(t, domain.OperationPending, marker.State)
			assert.Nil(t, marker.Payload)

			current, err := store.Get(ctx, "seller-1", domain.OperationExtraction)
			return err == nil && current != nil && current.State == domain.OperationDone
		}, 2*time.Second, time.Millisecond)

		// Só o estado persistido avança; o snapshot do chamador fica intacto
		assert.Equal(t, domain.OperationPending, marker.State)
		assert.Nil(t, marker.Payload)
	})

	t.Run("URL ausente - rejeita sem tocar no marker", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.StartExtraction(ctx, "seller-1", "")

		assert.ErrorIs(t, err, ErrMissingPageURL)
	})

	t.Run("Operação pendente - segunda extração é rejeitada", func(t *testing.T) {
		service, store, _, _ := newTestService(t)

		err := store.Save(ctx, &domain.OperationMarker{
			OperationID: "op-anterior",
			SellerID:    "seller-1",
			Kind:        domain.OperationExtraction,
			State:       domain.OperationPending,
		})
		assert.NoError(t, err)

		_, err = service.StartExtraction(ctx, "seller-1", "https://exemplo.com.br/curso")

		assert.ErrorIs(t, err, ErrOperationInProgress)
	})

	t.Run("Operação anterior concluída - nova extração pode começar", func(t *testing.T) {
		service, store, agentFlow, _ := newTestService(t)

		err := store.Save(ctx, &domain.OperationMarker{
			OperationID: "op-anterior",
			SellerID:    "seller-1",
			Kind:        domain.OperationExtraction,
			State:       domain.OperationDone,
		})
		assert.NoError(t, err)

		agentFlow.EXPECT().ExtractProductData("seller-1", "https://exemplo.com.br/outro").Return(&agentflowdomain.ExtractProductDataResponse{
			Name:    "Outro Produto",
			PageURL: "https://exemplo.com.br/outro",
		}, nil)

		marker, err := service.StartExtraction(ctx, "seller-1", "https://exemplo.com.br/outro")

		assert.NoError(t, err)
		assert.NotEqual(t, "op-anterior", marker.OperationID)

		assert.Eventually(t, func() bool {
			current, err := store.Get(ctx, "seller-1", domain.OperationExtraction)
			return err == nil && current != nil && current.State == domain.OperationDone && current.OperationID == marker.OperationID
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func TestGetOperationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Sem marker - devolve estado ocioso", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		marker, err := service.GetOperationStatus(ctx, "seller-1", domain.OperationExtraction)

		assert.NoError(t, err)
		assert.Equal(t, domain.OperationIdle, marker.State)
		assert.Equal(t, "seller-1", marker.SellerID)
		assert.Empty(t, marker.OperationID)
	})

	t.Run("Com marker - devolve o estado registrado", func(t *testing.T) {
		service, store, _, _ := newTestService(t)

		err := store.Save(ctx, &domain.OperationMarker{
			OperationID: "op-1",
			SellerID:    "seller-1",
			Kind:        domain.OperationExtraction,
			State:       domain.OperationPending,
		})
		assert.NoError(t, err)

		marker, err := service.GetOperationStatus(ctx, "seller-1", domain.OperationExtraction)

		assert.NoError(t, err)
		assert.Equal(t, domain.OperationPending, marker.State)
		assert.Equal(t, "op-1", marker.OperationID)
	})
}

func TestClearOperation(t *testing.T) {
	ctx := context.Background()
	service, store, _, _ := newTestService(t)

	err := store.Save(ctx, &domain.OperationMarker{
		OperationID: "op-1",
		SellerID:    "seller-1",
		Kind:        domain.OperationExtraction,
		State:       domain.OperationDone,
	})
	assert.NoError(t, err)

	err = service.ClearOperation(ctx, "seller-1", domain.OperationExtraction)
	assert.NoError(t, err)

	marker, err := service.GetOperationStatus(ctx, "seller-1", domain.OperationExtraction)
	assert.NoError(t, err)
	assert.Equal(t, domain.OperationIdle, marker.State)
}

func TestStartWhatsappPairing(t *testing.T) {
	ctx := context.Background()

	t.Run("Pareamento iniciado - registra o número e devolve o QR code", func(t *testing.T) {
		service, store, agentFlow, whatsappRepo := newTestService(t)

		agentFlow.EXPECT().AddWhatsappSession("seller-1", "+5511999999999").Return(&agentflowdomain.AddSessionResponse{
			InstanceName: "seller-1-instance",
			QRCode:       agentflowdomain.QRCode{Code: "qr-data"},
		}, nil)

		var created *domain.WhatsappNumber
		whatsappRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(number *domain.WhatsappNumber) error {
			created = number
			return nil
		})

		info, err := service.StartWhatsappPairing(ctx, "seller-1", "+5511999999999")

		assert.NoError(t, err)
		assert.Equal(t, "seller-1-instance", info.InstanceName)
		assert.Equal(t, "qr-data", info.QRCode)
		assert.NotEmpty(t, info.OperationID)

		assert.Equal(t, domain.WhatsappStatusConnecting, created.Status)
		assert.Equal(t, "+5511999999999", created.PhoneNumber)

		marker, err := store.Get(ctx, "seller-1", domain.OperationWhatsappPairing)
		assert.NoError(t, err)
		assert.Equal(t, domain.OperationPending, marker.State)
		assert.Equal(t, created.ID, marker.Payload["number_id"])
		assert.Equal(t, "seller-1-instance", marker.Payload["instance_name"])
	})

	t.Run("Telefone ausente - rejeita antes de chamar a ponte", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.StartWhatsappPairing(ctx, "seller-1", "")

		assert.ErrorIs(t, err, ErrMissingPhoneNumber)
	})

	t.Run("Falha na ponte - erro propaga e nada é registrado", func(t *testing.T) {
		service, store, agentFlow, _ := newTestService(t)

		agentFlow.EXPECT().AddWhatsappSession("seller-1", "+5511999999999").
			Return(nil, errors.New("sessão recusada"))

		_, err := service.StartWhatsappPairing(ctx, "seller-1", "+5511999999999")

		assert.Error(t, err)

		marker, err := store.Get(ctx, "seller-1", domain.OperationWhatsappPairing)
		assert.NoError(t, err)
		assert.Nil(t, marker)
	})

	t.Run("Pareamento pendente - segundo início é rejeitado", func(t *testing.T) {
		service, store, _, _ := newTestService(t)

		err := store.Save(ctx, &domain.OperationMarker{
			OperationID: "op-1",
			SellerID:    "seller-1",
			Kind:        domain.OperationWhatsappPairing,
			State:       domain.OperationPending,
		})
		assert.NoError(t, err)

		_, err = service.StartWhatsappPairing(ctx, "seller-1", "+5511999999999")

		assert.ErrorIs(t, err, ErrOperationInProgress)
	})
}

func TestCheckWhatsappPairing(t *testing.T) {
	ctx := context.Background()

	pendingMarker := func() *domain.OperationMarker {
		return &domain.OperationMarker{
			OperationID: "op-1",
			SellerID:    "seller-1",
			Kind:        domain.OperationWhatsappPairing,
			State:       domain.OperationPending,
			Payload: map[string]any{
				"number_id":     "w1",
				"instance_name": "seller-1-instance",
				"phone_number":  "+5511999999999",
			},
		}
	}

	t.Run("Sessão aberta - número promovido a open e marker concluído", func(t *testing.T) {
		service, store, agentFlow, whatsappRepo := newTestService(t)

		assert.NoError(t, store.Save(ctx, pendingMarker()))

		agentFlow.EXPECT().GetWhatsappSessionStatus("seller-1-instance").Return(&agentflowdomain.SessionStatusResponse{
			InstanceName: "seller-1-instance",
			Status:       domain.WhatsappStatusOpen,
		}, nil)
		whatsappRepo.EXPECT().UpdateStatus("w1", domain.WhatsappStatusOpen).Return(nil)

		marker, err := service.CheckWhatsappPairing(ctx, "seller-1")

		assert.NoError(t, err)
		assert.Equal(t, domain.OperationDone, marker.State)

		persisted, err := store.Get(ctx, "seller-1", domain.OperationWhatsappPairing)
		assert.NoError(t, err)
		assert.Equal(t, domain.OperationDone, persisted.State)
	})

	t.Run("Sessão ainda conectando - marker permanece pendente", func(t *testing.T) {
		service, store, agentFlow, _ := newTestService(t)

		assert.NoError(t, store.Save(ctx, pendingMarker()))

		agentFlow.EXPECT().GetWhatsappSessionStatus("seller-1-instance").Return(&agentflowdomain.SessionStatusResponse{
			InstanceName: "seller-1-instance",
			Status:       domain.WhatsappStatusConnecting,
		}, nil)

		marker, err := service.CheckWhatsappPairing(ctx, "seller-1")

		assert.NoError(t, err)
		assert.Equal(t, domain.OperationPending, marker.State)
	})

	t.Run("Falha na consulta - não derruba o pareamento, cliente tenta de novo", func(t *testing.T) {
		service, store, agentFlow, _ := newTestService(t)

		assert.NoError(t, store.Save(ctx, pendingMarker()))

		agentFlow.EXPECT().GetWhatsappSessionStatus("seller-1-instance").
			Return(nil, errors.New("timeout na ponte"))

		marker, err := service.CheckWhatsappPairing(ctx, "seller-1")

		assert.NoError(t, err)
		assert.Equal(t, domain.OperationPending, marker.State)
	})

	t.Run("Sem pareamento em andamento - devolve erro específico", func(t *testing.T) {
		service, _, _, _ := newTestService(t)

		_, err := service.CheckWhatsappPairing(ctx, "seller-1")

		assert.ErrorIs(t, err, ErrNoPendingPairing)
	})

	t.Run("Marker já concluído - também conta como sem pareamento pendente", func(t *testing.T) {
		service, store, _, _ := newTestService(t)

		marker := pendingMarker()
		marker.State = domain.OperationDone
		assert.NoError(t, store.Save(ctx, marker))

		_, err := service.CheckWhatsappPairing(ctx, "seller-1")

		assert.ErrorIs(t, err, ErrNoPendingPairing)
	})
}
