package handler

import (
	"encoding/json"
	"net/http"

	"github.com/agentpay/agentpay-api/infrastructure/repository"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/agentpay/agentpay-api/pkg/apiErrors"
	"github.com/agentpay/agentpay-api/pkg/log"
	"github.com/agentpay/agentpay-api/pkg/middleware"
)

// ListWhatsappNumbers lista os números de WhatsApp do seller autenticado
func ListWhatsappNumbers(repo repository.WhatsappNumberRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		numbers, err := repo.ListBySeller(userClaims.UserID)
		if err != nil {
			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Error("whatsapp: erro ao listar números")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar números de whatsapp", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(numbers); err != nil {
			logger.WithError(err).Error("whatsapp: erro ao enviar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
