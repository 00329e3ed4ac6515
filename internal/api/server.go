package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crowley-insights-api/infrastructure/export"
	"github.com/vfg2006/crowley-insights-api/internal/api/handler"
	"github.com/vfg2006/crowley-insights-api/internal/api/handler/router"
	"github.com/vfg2006/crowley-insights-api/internal/config"
	"github.com/vfg2006/crowley-insights-api/internal/scheduler"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/crowley-insights-api/pkg/metrics"
	"github.com/vfg2006/crowley-insights-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	reportingService reporting.ReportingService,
	authenticator authenticating.Authenticator,
	baseTableService *scheduler.BaseTableService,
	m *metrics.Metrics,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		handler.CronJobTypeBase: baseTableService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(baseTableService)...),
		router.WithRoutes(handler.Metrics(m.Handler())...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Filters(reportingService)...),
		router.WithRoutes(handler.Reports(reportingService, export.NewWorkbookWriter())...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Cors.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
			// Exportações grandes levam mais tempo para serem escritas
			WriteTimeout: 2 * time.Minute,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
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

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

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
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
