package client

import (
	"net/http"
	"time"

	agentflowdomain "github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/domain"
	"github.com/agentpay/agentpay-api/internal/config"
)

type Client interface {
	ExtractProductData(params agentflowdomain.ExtractProductDataParams) (*agentflowdomain.ExtractProductDataResponse, error)
	AddWhatsappSession(params agentflowdomain.AddSessionParams) (*agentflowdomain.AddSessionResponse, error)
	GetWhatsappSessionStatus(instanceName string) (*agentflowdomain.SessionStatusResponse, error)
}

type AgentFlowClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &AgentFlowClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
