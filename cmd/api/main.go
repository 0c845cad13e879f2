package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/agentpay/agentpay-api/infrastructure/database/postgres"
	"github.com/agentpay/agentpay-api/infrastructure/database/redis"
	"github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow"
	"github.com/agentpay/agentpay-api/infrastructure/integrator/agentflow/client"
	"github.com/agentpay/agentpay-api/infrastructure/repository"
	"github.com/agentpay/agentpay-api/internal/api"
	"github.com/agentpay/agentpay-api/internal/config"
	"github.com/agentpay/agentpay-api/internal/scheduler"
	"github.com/agentpay/agentpay-api/internal/usecases/authenticating"
	"github.com/agentpay/agentpay-api/internal/usecases/cataloging"
	"github.com/agentpay/agentpay-api/internal/usecases/integrating"
	"github.com/agentpay/agentpay-api/internal/usecases/onboarding"
	"github.com/agentpay/agentpay-api/internal/usecases/overviewing"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}
	defer redisClient.Close()
	logrus.Info("Conexão com Redis estabelecida com sucesso")

	userRepo := repository.NewUserRepository(pgConn)
	dealRepo := repository.NewDealRepository(pgConn)
	conversationRepo := repository.NewConversationRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	whatsappRepo := repository.NewWhatsappNumberRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	agentFlowClient := client.NewClient(cfg)
	agentFlowIntegrator := agentflow.New(cfg, agentFlowClient)

	overviewService := overviewing.NewService(dealRepo, conversationRepo, productRepo, whatsappRepo)
	catalogService := cataloging.NewService(productRepo)

	markerStore := onboarding.NewRedisMarkerStore(redisClient)
	onboardingService := onboarding.NewService(markerStore, agentFlowIntegrator, whatsappRepo)

	integrationService := integrating.NewService(userRepo)

	// Inicializa o agendador de sincronização de status de WhatsApp
	whatsappSyncService := scheduler.NewWhatsappStatusSyncService(whatsappRepo, agentFlowIntegrator, cfg)

	if err := whatsappSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de status de WhatsApp")
	} else {
		logrus.Info("Agendador de sincronização de status de WhatsApp iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		overviewService,
		catalogService,
		onboardingService,
		integrationService,
		authenticator,
		whatsappRepo,
		whatsappSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
