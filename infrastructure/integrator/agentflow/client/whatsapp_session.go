package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	agentflowdomain "github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/domain"
)

// addSessionRawResponse cobre as duas formas que a ponte usa para devolver o
// QR code: objeto ou objeto serializado como string JSON.
type addSessionRawResponse struct {
	InstanceName string          `json:"instanceName"`
	QRCode       json.RawMessage `json:"qrcode"`
}

// AddWhatsappSession cria uma sessão na ponte de WhatsApp e devolve o QR code
// de pareamento.
func (c *AgentFlowClient) AddWhatsappSession(params agentflowdomain.AddSessionParams) (*agentflowdomain.AddSessionResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	endpoint, err := c.endpoint("/whatsapp/add")
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

	raw := &addSessionRawResponse{}
	if err := json.NewDecoder(resp.Body).Decode(raw); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	qrcode, err := decodeQRCode(raw.QRCode)
	if err != nil {
		return nil, err
	}

	if qrcode.Code == "" {
		return nil, fmt.Errorf("resposta da ponte sem QR code")
	}

	return &agentflowdomain.AddSessionResponse{
		InstanceName: raw.InstanceName,
		QRCode:       *qrcode,
	}, nil
}

// GetWhatsappSessionStatus consulta o status atual de uma sessão na ponte.
func (c *AgentFlowClient) GetWhatsappSessionStatus(instanceName string) (*agentflowdomain.SessionStatusResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	endpoint, err := c.endpoint("/whatsapp/connect")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]string{"instanceName": instanceName})
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

	response := &agentflowdomain.SessionStatusResponse{}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}

func decodeQRCode(raw json.RawMessage) (*agentflowdomain.QRCode, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("resposta da ponte sem QR code")
	}

	qrcode := &agentflowdomain.QRCode{}
	if err := json.Unmarshal(raw, qrcode); err == nil {
		return qrcode, nil
	}

	// Segunda forma: o campo vem como string contendo o objeto serializado
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("erro ao decodificar o QR code: %w", err)
	}
	if err := json.Unmarshal([]byte(encoded), qrcode); err != nil {
		return nil, fmt.Errorf("erro ao decodificar o QR code: %w", err)
	}

	return qrcode, nil
}
