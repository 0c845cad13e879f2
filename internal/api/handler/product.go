package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/agentpay/agentpay-api/internal/usecases/cataloging"
	"github.com/agentpay/agentpay-api/pkg/apiErrors"
	"github.com/agentpay/agentpay-api/pkg/log"
	"github.com/agentpay/agentpay-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
)

// ListProducts lista os produtos do seller autenticado. Por padrão produtos
// removidos ficam de fora; ?status=active restringe aos ativos.
func ListProducts(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var statuses []domain.ProductStatus
		if status := r.URL.Query().Get("status"); status != "" {
			statuses = append(statuses, domain.ProductStatus(status))
		}

		products, err := service.ListProducts(userClaims.UserID, statuses)
		if err != nil {
			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Error("catalog: erro ao listar produtos")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar produtos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(products); err != nil {
			logger.WithError(err).Error("catalog: erro ao enviar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetProduct retorna um produto do seller autenticado por ID
func GetProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		product, err := service.GetProduct(userClaims.UserID, productID)
		if err != nil {
			if errors.Is(err, cataloging.ErrProductNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Produto não encontrado", nil)
				return
			}

			logger.WithFields(log.Fields{
				"seller_id":  userClaims.UserID,
				"product_id": productID,
				"error":      err.Error(),
			}).Error("catalog: erro ao buscar produto")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar produto", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.WithError(err).Error("catalog: erro ao enviar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// CreateProduct cria um produto no catálogo do seller autenticado
func CreateProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		product, err := service.CreateProduct(userClaims.UserID, &req)
		if err != nil {
			if errors.Is(err, cataloging.ErrMissingProductName) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}

			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Error("catalog: erro ao criar produto")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar produto", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.WithError(err).Error("catalog: erro ao enviar resposta")
		}
	})
}

// UpdateProduct atualiza um produto do seller autenticado
func UpdateProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		var req domain.UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.ID = productID

		product, err := service.UpdateProduct(userClaims.UserID, &req)
		if err != nil {
			if errors.Is(err, cataloging.ErrProductNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Produto não encontrado", nil)
				return
			}

			logger.WithFields(log.Fields{
				"seller_id":  userClaims.UserID,
				"product_id": productID,
				"error":      err.Error(),
			}).Error("catalog: erro ao atualizar produto")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar produto", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.WithError(err).Error("catalog: erro ao enviar resposta")
		}
	})
}

// RemoveProduct remove (logicamente) um produto do seller autenticado
func RemoveProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		productID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		if err := service.RemoveProduct(userClaims.UserID, productID); err != nil {
			if errors.Is(err, cataloging.ErrProductNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Produto não encontrado", nil)
				return
			}

			logger.WithFields(log.Fields{
				"seller_id":  userClaims.UserID,
				"product_id": productID,
				"error":      err.Error(),
			}).Error("catalog: erro ao remover produto")

			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover produto", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
