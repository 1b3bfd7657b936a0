package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/gmail"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/gmail/gmailclient"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/openai"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/qbo/qboclient"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/repository"
	"github.com/vfg2006/ledger-pulse-api/internal/api"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
	"github.com/vfg2006/ledger-pulse-api/internal/scheduler"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/authenticating"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/connecting"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/drafting"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/managing"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/running"
	"github.com/vfg2006/ledger-pulse-api/internal/usecases/snapshotting"
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

	tenantRepo := repository.NewTenantRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	clientRepo := repository.NewClientRepository(pgConn)
	tokenRepo := repository.NewTokenRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	draftRepo := repository.NewDraftRepository(pgConn)
	auditRepo := repository.NewAuditRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, tenantRepo, auditRepo, cfg)

	tokenManager := qboclient.NewTokenManager(cfg, tokenRepo)

	qboClient := qboclient.NewClient(cfg, tokenManager)
	qboIntegrator := qbo.New(cfg, qboClient)

	gmailClient := gmailclient.NewClient(cfg, tokenRepo)
	mailboxIntegrator := gmail.New(cfg, gmailClient)

	// O compositor de linguagem natural é opcional: sem chave da OpenAI o
	// sistema sempre usa o template determinístico
	var composerIntegrator openai.ComposerIntegrator
	if cfg.OpenAI.APIKey != "" {
		composerIntegrator = openai.New(cfg, openaiclient.NewClient(cfg))
	} else {
		logrus.Info("Chave da OpenAI ausente, compositor de linguagem natural desabilitado")
	}

	builder := snapshotting.NewService(qboIntegrator)
	composer := drafting.NewComposer(composerIntegrator)

	orchestrator := running.NewService(
		builder,
		composer,
		snapshotRepo,
		draftRepo,
		clientRepo,
		tenantRepo,
		auditRepo,
		cfg.ScheduledRuns.MaxConcurrentJobs,
	)

	clientManager := managing.NewService(clientRepo, tenantRepo, tokenRepo, auditRepo)
	connector := connecting.NewService(qboIntegrator, mailboxIntegrator, clientRepo, auditRepo)
	draftManager := drafting.NewService(draftRepo, auditRepo, mailboxIntegrator)

	// Inicializa os agendadores de execução e retenção
	scheduledRunsService := scheduler.NewScheduledRunsService(
		clientRepo,
		auditRepo,
		orchestrator,
		cfg,
	)

	retentionService := scheduler.NewRetentionService(
		snapshotRepo,
		draftRepo,
		cfg,
	)

	// Inicia os agendadores em background
	if err := scheduledRunsService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de execuções")
	} else {
		logrus.Info("Agendador de execuções iniciado com sucesso")
	}

	if err := retentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de retenção de dados")
	} else {
		logrus.Info("Agendador de retenção de dados iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		clientManager,
		connector,
		orchestrator,
		draftManager,
		auditRepo,
		scheduledRunsService,
		retentionService,
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
