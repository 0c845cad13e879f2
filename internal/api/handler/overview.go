package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/agentpay/agentpay-api/internal/usecases/overviewing"
	"github.com/agentpay/agentpay-api/pkg/apiErrors"
	"github.com/agentpay/agentpay-api/pkg/log"
	"github.com/agentpay/agentpay-api/pkg/middleware"
	"github.com/agentpay/agentpay-api/pkg/utils"
)

// GetOverview monta o dashboard do seller autenticado. Aceita um preset de
// período (?period=last_7_days) ou um intervalo customizado via start_date e
// end_date; product_ids restringe o escopo a uma lista separada por vírgula.
func GetOverview(service overviewing.Overviewer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		period, err := resolvePeriod(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Warn("overview: período inválido")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		var productSelection []string
		if raw := r.URL.Query().Get("product_ids"); raw != "" {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					productSelection = append(productSelection, id)
				}
			}
		}

		logger.WithFields(log.Fields{
			"seller_id":  userClaims.UserID,
			"start_date": period.Start.Format(time.DateOnly),
			"end_date":   period.End.Format(time.DateOnly),
		}).Info("overview: montando dashboard")

		metrics, err := service.GetDashboardMetrics(userClaims.UserID, period, productSelection)
		if err != nil {
			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Error("overview: erro ao montar o dashboard")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(metrics); err != nil {
			logger.WithFields(log.Fields{
				"seller_id": userClaims.UserID,
				"error":     err.Error(),
			}).Error("overview: erro ao enviar resposta")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// resolvePeriod traduz os parâmetros da query em um Period. Um intervalo
// customizado exige as duas datas; na ausência de parâmetros vale o dia atual.
func resolvePeriod(r *http.Request) (domain.Period, error) {
	startRaw := r.URL.Query().Get("start_date")
	endRaw := r.URL.Query().Get("end_date")

	if startRaw != "" || endRaw != "" {
		startDate, err := utils.ParseDate(startRaw)
		if err != nil {
			return domain.Period{}, err
		}

		endDate, err := utils.ParseDate(endRaw)
		if err != nil {
			return domain.Period{}, err
		}

		if startDate.IsZero() || endDate.IsZero() {
			return domain.Period{}, domain.ErrInvalidPeriod
		}

		return domain.NewCustomPeriod(*startDate, *endDate)
	}

	preset := domain.PeriodPreset(r.URL.Query().Get("period"))
	return domain.ResolvePreset(preset, time.Now()), nil
}
