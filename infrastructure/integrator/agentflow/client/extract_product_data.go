package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	agentflowdomain "github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/domain"
)

// ExtractProductData dispara o webhook de extração de dados de página de
// produto. A chamada é síncrona e pode demorar: o serviço externo visita a
// página antes de responder.
func (c *AgentFlowClient) ExtractProductData(params agentflowdomain.ExtractProductDataParams) (*agentflowdomain.ExtractProductDataResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	endpoint, err := c.endpoint("/onboarding/extract-data-from-pages")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar os parâmetros: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	response := &agentflowdomain.ExtractProductDataResponse{}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}

func (c *AgentFlowClient) endpoint(suffix string) (string, error) {
	endpoint, err := url.Parse(c.config.AgentFlow.BaseURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, suffix)
	return endpoint.String(), nil
}

func (c *AgentFlowClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.config.AgentFlow.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
