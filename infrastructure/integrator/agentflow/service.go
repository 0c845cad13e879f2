package agentflow

import (
	"github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/client"
	agentflowdomain "github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/domain"
	"github.com/agentpay/agentpay-api/internal/config"
)

// AgentFlowIntegrator é a fachada sobre o serviço externo de webhooks que
// atende os dois assistentes de onboarding e a sincronização de sessões.
type AgentFlowIntegrator interface {
	ExtractProductData(sellerID, pageURL string) (*agentflowdomain.ExtractProductDataResponse, error)
	AddWhatsappSession(sellerID, phoneNumber string) (*agentflowdomain.AddSessionResponse, error)
	GetWhatsappSessionStatus(instanceName string) (*agentflowdomain.SessionStatusResponse, error)
}

type AgentFlowService struct {
	cfg    *config.Config
	Client client.Client
}

func New(cfg *config.Config, c client.Client) AgentFlowIntegrator {
	return &AgentFlowService{
		cfg:    cfg,
		Client: c,
	}
}

func (s *AgentFlowService) ExtractProductData(sellerID, pageURL string) (*agentflowdomain.ExtractProductDataResponse, error) {
	return s.Client.ExtractProductData(agentflowdomain.ExtractProductDataParams{
		SellerID: sellerID,
		PageURL:  pageURL,
	})
}

func (s *AgentFlowService) AddWhatsappSession(sellerID, phoneNumber string) (*agentflowdomain.AddSessionResponse, error) {
	return s.Client.AddWhatsappSession(agentflowdomain.AddSessionParams{
		SellerID:    sellerID,
		PhoneNumber: phoneNumber,
	})
}

func (s *AgentFlowService) GetWhatsappSessionStatus(instanceName string) (*agentflowdomain.SessionStatusResponse, error) {
	return s.Client.GetWhatsappSessionStatus(instanceName)
}
