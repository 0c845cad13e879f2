package onboarding

import (
	"context"
	"time"

	"github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow"
	"github.com/agentpay/agentpay-api/infrastructure/repository"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/agentpay/agentpay-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrOperationInProgress = errors.New("já existe uma operação em andamento")
	ErrNoPendingPairing    = errors.New("não há pareamento de whatsapp em andamento")
	ErrMissingPageURL      = errors.New("a URL da página é obrigatória")
	ErrMissingPhoneNumber  = errors.New("o número de telefone é obrigatório")
)

// Onboarder conduz os dois assistentes de onboarding: extração de dados de
// produto a partir de uma página e pareamento de número de WhatsApp.
type Onboarder interface {
	StartExtraction(ctx context.Context, sellerID, pageURL string) (*domain.OperationMarker, error)
	GetOperationStatus(ctx context.Context, sellerID string, kind domain.OperationKind) (*domain.OperationMarker, error)
	ClearOperation(ctx context.Context, sellerID string, kind domain.OperationKind) error
	StartWhatsappPairing(ctx context.Context, sellerID, phoneNumber string) (*domain.PairingInfo, error)
	CheckWhatsappPairing(ctx context.Context, sellerID string) (*domain.OperationMarker, error)
}

type Service struct {
	markerStore        MarkerStore
	agentFlow          agentflow.AgentFlowIntegrator
	whatsappRepository repository.WhatsappNumberRepository
}

func NewService(
	markerStore MarkerStore,
	agentFlow agentflow.AgentFlowIntegrator,
	whatsappRepo repository.WhatsappNumberRepository,
) Onboarder {
	return &Service{
		markerStore:        markerStore,
		agentFlow:          agentFlow,
		whatsappRepository: whatsappRepo,
	}
}

// StartExtraction dispara a extração de dados da página em segundo plano e
// devolve imediatamente o marker pendente. O cliente acompanha o progresso
// consultando o status da operação.
func (s *Service) StartExtraction(ctx context.Context, sellerID, pageURL string) (*domain.OperationMarker, error) {
	if pageURL == "" {
		return nil, ErrMissingPageURL
	}

	existing, err := s.markerStore.Get(ctx, sellerID, domain.OperationExtraction)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.State == domain.OperationPending {
		return nil, ErrOperationInProgress
	}

	marker, err := s.newMarker(sellerID, domain.OperationExtraction)
	if err != nil {
		return nil, err
	}

	if err := s.markerStore.Save(ctx, marker); err != nil {
		return nil, err
	}

	// A extração leva até dois minutos; quem espera é o marker, não a
	// requisição HTTP. A goroutine trabalha sobre a própria cópia: o marker
	// devolvido ao chamador ainda será serializado na resposta.
	job := *marker
	go s.runExtraction(&job, pageURL)

	return marker, nil
}

func (s *Service) runExtraction(marker *domain.OperationMarker, pageURL string) {
	// O contexto da requisição original já terá sido cancelado quando a
	// extração terminar.
	ctx := context.Background()

	logger := logrus.WithFields(logrus.Fields{
		"seller_id":    marker.SellerID,
		"operation_id": marker.OperationID,
	})

	result, err := s.agentFlow.ExtractProductData(marker.SellerID, pageURL)
	if err != nil {
		logger.WithError(err).Error("onboarding: erro na extração de dados do produto")

		marker.State = domain.OperationError
		marker.Error = err.Error()
		if saveErr := s.markerStore.Save(ctx, marker); saveErr != nil {
			logger.WithError(saveErr).Error("onboarding: erro ao salvar o marker de falha da extração")
		}
		return
	}

	logger.Debugf("onboarding: dados extraídos da página: %s", utils.PrettyJson(result))

	marker.State = domain.OperationDone
	marker.Payload = map[string]any{
		"name":        result.Name,
		"description": result.Description,
		"price":       result.Price,
		"page_url":    result.PageURL,
	}

	if err := s.markerStore.Save(ctx, marker); err != nil {
		logger.WithError(err).Error("onboarding: erro ao salvar o resultado da extração")
		return
	}

	logger.Info("onboarding: extração de dados do produto concluída")
}

// GetOperationStatus devolve o marker atual ou um marker ocioso quando não
// existe operação registrada.
func (s *Service) GetOperationStatus(ctx context.Context, sellerID string, kind domain.OperationKind) (*domain.OperationMarker, error) {
	marker, err := s.markerStore.Get(ctx, sellerID, kind)
	if err != nil {
		return nil, err
	}

	if marker == nil {
		return &domain.OperationMarker{
			SellerID: sellerID,
			Kind:     kind,
			State:    domain.OperationIdle,
		}, nil
	}

	return marker, nil
}

// ClearOperation descarta o marker e devolve o assistente ao estado inicial.
// É o que acontece quando o seller confirma o resultado ou desiste no meio.
func (s *Service) ClearOperation(ctx context.Context, sellerID string, kind domain.OperationKind) error {
	return s.markerStore.Clear(ctx, sellerID, kind)
}

// StartWhatsappPairing cria a sessão na ponte e devolve o QR code. O número
// fica registrado com status "connecting" até o pareamento ser confirmado.
func (s *Service) StartWhatsappPairing(ctx context.Context, sellerID, phoneNumber string) (*domain.PairingInfo, error) {
	if phoneNumber == "" {
		return nil, ErrMissingPhoneNumber
	}

	existing, err := s.markerStore.Get(ctx, sellerID, domain.OperationWhatsappPairing)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.State == domain.OperationPending {
		return nil, ErrOperationInProgress
	}

	session, err := s.agentFlow.AddWhatsappSession(sellerID, phoneNumber)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a sessão de whatsapp")
	}

	numberID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar o ID do número de whatsapp")
	}

	number := &domain.WhatsappNumber{
		ID:           numberID,
		SellerID:     sellerID,
		PhoneNumber:  phoneNumber,
		InstanceName: session.InstanceName,
		Status:       domain.WhatsappStatusConnecting,
	}

	if err := s.whatsappRepository.Create(number); err != nil {
		return nil, err
	}

	marker, err := s.newMarker(sellerID, domain.OperationWhatsappPairing)
	if err != nil {
		return nil, err
	}

	marker.Payload = map[string]any{
		"number_id":     number.ID,
		"instance_name": session.InstanceName,
		"phone_number":  phoneNumber,
	}

	if err := s.markerStore.Save(ctx, marker); err != nil {
		return nil, err
	}

	return &domain.PairingInfo{
		OperationID:  marker.OperationID,
		InstanceName: session.InstanceName,
		QRCode:       session.QRCode.Code,
	}, nil
}

// CheckWhatsappPairing consulta a ponte sobre a sessão pendente. Quando a
// sessão abre, o número é promovido a "open" e o marker vai para done.
func (s *Service) CheckWhatsappPairing(ctx context.Context, sellerID string) (*domain.OperationMarker, error) {
	marker, err := s.markerStore.Get(ctx, sellerID, domain.OperationWhatsappPairing)
	if err != nil {
		return nil, err
	}
	if marker == nil || marker.State != domain.OperationPending {
		return nil, ErrNoPendingPairing
	}

	instanceName, _ := marker.Payload["instance_name"].(string)
	if instanceName == "" {
		return nil, errors.New("marker de pareamento sem nome de instância")
	}

	status, err := s.agentFlow.GetWhatsappSessionStatus(instanceName)
	if err != nil {
		// Falha na consulta não derruba o pareamento; o cliente tenta de novo.
		logrus.WithError(err).WithField("seller_id", sellerID).
			Warn("onboarding: erro ao consultar o status da sessão de whatsapp")
		return marker, nil
	}

	if status.Status != domain.WhatsappStatusOpen {
		return marker, nil
	}

	if numberID, ok := marker.Payload["number_id"].(string); ok && numberID != "" {
		if err := s.whatsappRepository.UpdateStatus(numberID, domain.WhatsappStatusOpen); err != nil {
			return nil, err
		}
	}

	marker.State = domain.OperationDone
	if err := s.markerStore.Save(ctx, marker); err != nil {
		return nil, err
	}

	return marker, nil
}

func (s *Service) newMarker(sellerID string, kind domain.OperationKind) (*domain.OperationMarker, error) {
	operationID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar o ID da operação")
	}

	return &domain.OperationMarker{
		OperationID: operationID,
		SellerID:    sellerID,
		Kind:        kind,
		State:       domain.OperationPending,
		CreatedAt:   time.Now(),
	}, nil
}
