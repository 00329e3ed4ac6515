// Package scheduler contém os serviços de agendamento para recarga de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crowley-insights-api/infrastructure/repository"
	"github.com/vfg2006/crowley-insights-api/internal/config"
	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/pkg/metrics"
)

type BaseTableConfig struct {
	Interval time.Duration
	Enabled  bool
}

// BaseTableService mantém a base de inserções em memória e a recarrega periodicamente.
// Leitores recebem o ponteiro da tabela vigente; a troca não altera tabelas já entregues.
type BaseTableService struct {
	scheduler *gocron.Scheduler
	repo      repository.InsertionRepository
	metrics   *metrics.Metrics
	config    BaseTableConfig

	tableMutex sync.RWMutex
	table      *dataset.Table
	loadedAt   time.Time

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastError           error
}

func NewBaseTableService(repo repository.InsertionRepository, m *metrics.Metrics, cfg *config.Config) *BaseTableService {
	baseConfig := BaseTableConfig{
		Interval: cfg.BaseReload.Interval, // Default: 1h
		Enabled:  cfg.BaseReload.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"interval": baseConfig.Interval.String(),
		"enabled":  baseConfig.Enabled,
	}).Info("Configuração da recarga da base carregada")

	return &BaseTableService{
		scheduler: gocron.NewScheduler(time.Local),
		repo:      repo,
		metrics:   m,
		config:    baseConfig,
	}
}

// Start faz a primeira carga de forma síncrona e agenda as recargas
func (s *BaseTableService) Start(ctx context.Context) error {
	if err := s.Reload(ctx); err != nil {
		logrus.WithError(err).Error("Erro na carga inicial da base; API seguirá sem dados até a próxima recarga")
	}

	if !s.config.Enabled {
		logrus.Info("Recarga periódica da base desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Every(s.config.Interval).WaitForSchedule().Do(func() {
		if err := s.Reload(ctx); err != nil {
			logrus.WithError(err).Error("Erro na recarga da base")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga da base: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando recarga da base")
		s.scheduler.Stop()
	}()

	return nil
}

// Table devolve a base vigente
func (s *BaseTableService) Table() (*dataset.Table, error) {
	s.tableMutex.RLock()
	defer s.tableMutex.RUnlock()

	if s.table == nil {
		return nil, domain.ErrBaseNotLoaded
	}
	return s.table, nil
}

// Reload lê a base inteira do repositório e troca a tabela. Em caso de falha a tabela anterior continua valendo
func (s *BaseTableService) Reload(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Recarga da base já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	err := s.reload(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastError = err
	s.syncMutex.Unlock()

	return err
}

func (s *BaseTableService) reload(ctx context.Context) error {
	started := time.Now()

	raw, err := s.repo.ListInsertions(ctx)
	if err != nil {
		s.metrics.ObserveReload(metrics.OutcomeError, 0)
		return errors.Wrap(err, "erro ao carregar inserções")
	}

	table := dataset.Load(raw)

	s.tableMutex.Lock()
	s.table = table
	s.loadedAt = time.Now()
	s.tableMutex.Unlock()

	s.metrics.ObserveReload(metrics.OutcomeOK, table.Len())

	fields := logrus.Fields{
		"base_rows":   table.Len(),
		"duration_ms": time.Since(started).Milliseconds(),
	}
	if last := table.LastDate(); last != nil {
		fields["base_last_date"] = last.Format(time.DateOnly)
	}
	logrus.WithFields(fields).Info("Base de inserções carregada")

	return nil
}

// TriggerManualSync inicia manualmente uma recarga da base
func (s *BaseTableService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga da base já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual da base")
	go func() {
		if err := s.Reload(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na recarga manual da base")
		}
	}()
}

// GetStatus retorna o status atual da base e do agendador
func (s *BaseTableService) GetStatus() map[string]any {
	s.tableMutex.RLock()
	rows := 0
	var lastUpdate *time.Time
	if s.table != nil {
		rows = s.table.Len()
		lastUpdate = s.table.LastDate()
	}
	loadedAt := s.loadedAt
	s.tableMutex.RUnlock()

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_interval":          s.config.Interval.String(),
		"sync_running":           s.syncRunning,
		"loaded":                 rows > 0 || !loadedAt.IsZero(),
		"rows":                   rows,
		"loaded_at":              loadedAt,
		"last_update":            lastUpdate,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}
	return status
}
