package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agentpay/agentpay-api/infrastructure/repository"
	"github.com/agentpay/agentpay-api/internal/api/handler"
	"github.com/agentpay/agentpay-api/internal/api/handler/router"
	"github.com/agentpay/agentpay-api/internal/config"
	"github.com/agentpay/agentpay-api/internal/scheduler"
	"github.com/agentpay/agentpay-api/internal/usecases/authenticating"
	"github.com/agentpay/agentpay-api/internal/usecases/cataloging"
	"github.com/agentpay/agentpay-api/internal/usecases/integrating"
	"github.com/agentpay/agentpay-api/internal/usecases/onboarding"
	"github.com/agentpay/agentpay-api/internal/usecases/overviewing"
	"github.com/agentpay/agentpay-api/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	overviewService overviewing.Overviewer,
	catalogService cataloging.CatalogService,
	onboardingService onboarding.Onboarder,
	integrationService integrating.PlatformIntegrator,
	authenticator authenticating.Authenticator,
	whatsappRepo repository.WhatsappNumberRepository,
	whatsappSyncService *scheduler.WhatsappStatusSyncService,
) (*Server, error) {
	// Inicializar o struct com os serviços de cron jobs
	cronServices := handler.CronJobServices{
		WhatsappStatusSyncService: whatsappSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Overview(overviewService)...),
		router.WithRoutes(handler.Products(catalogService)...),
		router.WithRoutes(handler.Extraction(onboardingService)...),
		router.WithRoutes(handler.Whatsapp(onboardingService, whatsappRepo)...),
		router.WithRoutes(handler.Integrations(integrationService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
