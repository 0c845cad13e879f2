package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/agentpay/agentpay-api/internal/usecases/integrating"
	"github.com/agentpay/agentpay-api/pkg/apiErrors"
	"github.com/agentpay/agentpay-api/pkg/log"
	"github.com/agentpay/agentpay-api/pkg/middleware"
)

// GetPlatformIntegrations retorna o estado das integrações de plataforma do
// seller autenticado (Hotmart, Kiwify)
func GetPlatformIntegrations(service integrating.PlatformIntegrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		integrations, err := service.ListPlatformIntegrations(userClaims.UserID)
		if err != nil {
			if errors.Is(err, integrating.ErrSellerNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)
				return
			}

			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Error("integrações: erro ao listar plataformas")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar integrações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(integrations); err != nil {
			logger.WithError(err).Error("integrações: erro ao enviar resposta")
		}
	})
}

// UpdatePlatformIntegrations grava os tokens de plataforma do seller
// autenticado e retorna o estado atualizado. Campo ausente no corpo mantém o
// token atual; string vazia remove o token.
func UpdatePlatformIntegrations(service integrating.PlatformIntegrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UpdatePlatformTokensRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		integrations, err := service.UpdatePlatformTokens(userClaims.UserID, &req)
		if err != nil {
			if errors.Is(err, integrating.ErrSellerNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)
				return
			}

			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Error("integrações: erro ao gravar tokens de plataforma")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar tokens", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(integrations); err != nil {
			logger.WithError(err).Error("integrações: erro ao enviar resposta")
		}
	})
}
