package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/agentpay/agentpay-api/internal/usecases/onboarding"
	"github.com/agentpay/agentpay-api/pkg/apiErrors"
	"github.com/agentpay/agentpay-api/pkg/log"
	"github.com/agentpay/agentpay-api/pkg/middleware"
)

type StartExtractionRequest struct {
	PageURL string `json:"page_url"`
}

type StartPairingRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// StartExtraction dispara a extração de dados de uma página de produto. A
// resposta é imediata com o marker pendente; o progresso é acompanhado por
// GET /v1/onboarding/extraction/status.
func StartExtraction(service onboarding.Onboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req StartExtractionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		marker, err := service.StartExtraction(r.Context(), userClaims.UserID, req.PageURL)
		if err != nil {
			switch {
			case errors.Is(err, onboarding.ErrMissingPageURL):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

			case errors.Is(err, onboarding.ErrOperationInProgress):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

			default:
				logger.WithFields(log.Fields{
					"seller_id": userClaims.UserID,
					"error":     err.Error(),
				}).Error("onboarding: erro ao iniciar extração")

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar extração", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		if err := json.NewEncoder(w).Encode(marker); err != nil {
			logger.WithError(err).Error("onboarding: erro ao enviar resposta")
		}
	})
}

// GetExtractionStatus retorna o estado atual da extração do seller
func GetExtractionStatus(service onboarding.Onboarder) http.Handler {
	return operationStatus(service, domain.OperationExtraction)
}

// ClearExtraction descarta o marker da extração e volta o assistente ao início
func ClearExtraction(service onboarding.Onboarder) http.Handler {
	return clearOperation(service, domain.OperationExtraction)
}

// StartWhatsappPairing cria a sessão de WhatsApp e retorna o QR code de
// pareamento
func StartWhatsappPairing(service onboarding.Onboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req StartPairingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		pairing, err := service.StartWhatsappPairing(r.Context(), userClaims.UserID, req.PhoneNumber)
		if err != nil {
			switch {
			case errors.Is(err, onboarding.ErrMissingPhoneNumber):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

			case errors.Is(err, onboarding.ErrOperationInProgress):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

			default:
				logger.WithFields(log.Fields{
					"seller_id": userClaims.UserID,
					"error":     err.Error(),
				}).Error("onboarding: erro ao iniciar pareamento de whatsapp")

				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao criar a sessão de whatsapp", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(pairing); err != nil {
			logger.WithError(err).Error("onboarding: erro ao enviar resposta")
		}
	})
}

// CheckWhatsappPairing consulta a ponte sobre o pareamento pendente e retorna
// o marker atualizado
func CheckWhatsappPairing(service onboarding.Onboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		marker, err := service.CheckWhatsappPairing(r.Context(), userClaims.UserID)
		if err != nil {
			if errors.Is(err, onboarding.ErrNoPendingPairing) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}

			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Error("onboarding: erro ao verificar pareamento de whatsapp")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao verificar pareamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(marker); err != nil {
			logger.WithError(err).Error("onboarding: erro ao enviar resposta")
		}
	})
}

// ClearPairing descarta o marker do pareamento
func ClearPairing(service onboarding.Onboarder) http.Handler {
	return clearOperation(service, domain.OperationWhatsappPairing)
}

func operationStatus(service onboarding.Onboarder, kind domain.OperationKind) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		marker, err := service.GetOperationStatus(r.Context(), userClaims.UserID, kind)
		if err != nil {
			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"kind":      string(kind),
				"error":     err.Error(),
			}).Error("onboarding: erro ao consultar status da operação")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar status da operação", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(marker); err != nil {
			logger.WithError(err).Error("onboarding: erro ao enviar resposta")
		}
	})
}

func clearOperation(service onboarding.Onboarder, kind domain.OperationKind) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if err := service.ClearOperation(r.Context(), userClaims.UserID, kind); err != nil {
			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"kind":      string(kind),
				"error":     err.Error(),
			}).Error("onboarding: erro ao descartar a operação")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao descartar a operação", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
