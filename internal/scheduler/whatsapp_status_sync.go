package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow"
	"github.com/agentpay/agentpay-api/infrastructure/repository"
	"github.com/agentpay/agentpay-api/internal/config"
	"github.com/agentpay/agentpay-api/internal/domain"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// WhatsappStatusSyncConfig representa a configuração do agendador de status de WhatsApp
type WhatsappStatusSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
}

// WhatsappStatusSyncService reconcilia periodicamente o status dos números de
// WhatsApp com o status real das sessões na ponte. Uma sessão pode cair sem o
// seller perceber; o card de números ativos do dashboard depende desse dado.
type WhatsappStatusSyncService struct {
	scheduler           *gocron.Scheduler
	config              WhatsappStatusSyncConfig
	whatsappRepo        repository.WhatsappNumberRepository
	agentFlow           agentflow.AgentFlowIntegrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewWhatsappStatusSyncService cria uma nova instância do serviço de sincronização de status de WhatsApp
func NewWhatsappStatusSyncService(
	whatsappRepo repository.WhatsappNumberRepository,
	agentFlow agentflow.AgentFlowIntegrator,
	appConfig *config.Config,
) *WhatsappStatusSyncService {
	syncConfig := WhatsappStatusSyncConfig{
		CronSchedule:        appConfig.WhatsappStatusSync.CronSchedule,
		RequestDelaySeconds: appConfig.WhatsappStatusSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.WhatsappStatusSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de status de WhatsApp carregada")

	return &WhatsappStatusSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		whatsappRepo: whatsappRepo,
		agentFlow:    agentFlow,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *WhatsappStatusSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de status de WhatsApp desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de status de WhatsApp")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllStatuses()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de status de WhatsApp: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de status de WhatsApp")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllStatuses percorre todos os números registrados e atualiza o status
// dos que divergem da ponte
func (s *WhatsappStatusSyncService) syncAllStatuses() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de status de WhatsApp já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de status de WhatsApp")

	numbers, err := s.whatsappRepo.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar números de WhatsApp para sincronização")
		return
	}

	if len(numbers) == 0 {
		logrus.Info("Nenhum número de WhatsApp registrado para sincronização")
		return
	}

	updated := 0
	for _, number := range numbers {
		if s.syncNumber(number) {
			updated++
		}

		// Intervalo entre requisições para não sobrecarregar a ponte
		time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"numbers":  len(numbers),
		"updated":  updated,
	}).Info("Sincronização de status de WhatsApp concluída")
}

// syncNumber consulta a ponte e atualiza o status quando há divergência.
// Retorna true quando o número foi atualizado.
func (s *WhatsappStatusSyncService) syncNumber(number *domain.WhatsappNumber) bool {
	logger := logrus.WithFields(logrus.Fields{
		"number_id":     number.ID,
		"seller_id":     number.SellerID,
		"instance_name": number.InstanceName,
	})

	status, err := s.agentFlow.GetWhatsappSessionStatus(number.InstanceName)
	if err != nil {
		logger.WithError(err).Error("Erro ao consultar status da sessão de WhatsApp")
		return false
	}

	if status.Status == number.Status {
		return false
	}

	logger.WithFields(logrus.Fields{
		"previous_status": number.Status,
		"current_status":  status.Status,
	}).Info("Status de sessão de WhatsApp divergente, atualizando")

	if err := s.whatsappRepo.UpdateStatus(number.ID, status.Status); err != nil {
		logger.WithError(err).Error("Erro ao atualizar status do número de WhatsApp")
		return false
	}

	return true
}

// TriggerManualSync inicia manualmente uma sincronização de status de WhatsApp
func (s *WhatsappStatusSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de status de WhatsApp já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de status de WhatsApp")
	go s.syncAllStatuses()
}

// GetStatus retorna o status atual do agendador
func (s *WhatsappStatusSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
