package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crowley-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/crowley-insights-api/infrastructure/repository"
	"github.com/vfg2006/crowley-insights-api/internal/api"
	"github.com/vfg2006/crowley-insights-api/internal/config"
	"github.com/vfg2006/crowley-insights-api/internal/scheduler"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
	"github.com/vfg2006/crowley-insights-api/pkg/metrics"
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
	log.SetDevFields(cfg.App.LogDevFields)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	m := metrics.New()

	insertionRepo := repository.NewInsertionRepository(pgConn, cfg.Dataset.TableName)

	baseTableService := scheduler.NewBaseTableService(insertionRepo, m, cfg)
	if err := baseTableService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga da base")
	} else {
		logrus.Info("Agendador de recarga da base iniciado com sucesso")
	}

	reportingService := reporting.NewReportingService(baseTableService, reporting.Config{
		MinDate:           cfg.Dataset.MinDate,
		DefaultWindowDays: cfg.Dataset.DefaultWindowDays,
		Limits:            cfg.Limits,
	}, m)

	authenticator := authenticating.NewService(cfg.Auth)

	server, err := api.New(cfg, reportingService, authenticator, baseTableService, m)
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

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
