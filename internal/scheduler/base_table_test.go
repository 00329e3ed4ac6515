package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crowley-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/crowley-insights-api/internal/config"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func intPtr(v int) *int { return &v }

func rawRows() []domain.RawInsertion {
	return []domain.RawInsertion{
		{Market: "SP", Vehicle: "R1", Advertiser: "A", DateText: "05/03/2024", Type: "Comercial", Volume: intPtr(2)},
		{Market: "SP", Vehicle: "R2", Advertiser: "B", DateText: "07/03/2024", Type: "Comercial", Volume: intPtr(1)},
	}
}

func newBaseTableService(t *testing.T) (*BaseTableService, *mocks.MockInsertionRepository, *metrics.Metrics) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInsertionRepository(ctrl)
	m := metrics.New()

	cfg := &config.Config{BaseReload: config.BaseReload{Interval: time.Hour, Enabled: false}}
	return NewBaseTableService(repo, m, cfg), repo, m
}

func TestBaseTableService_Reload(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(repo *mocks.MockInsertionRepository)
		validate func(t *testing.T, s *BaseTableService, m *metrics.Metrics, err error)
	}{
		{
			name: "Carga com sucesso troca a tabela",
			setup: func(repo *mocks.MockInsertionRepository) {
				repo.EXPECT().ListInsertions(gomock.Any()).Return(rawRows(), nil)
			},
			validate: func(t *testing.T, s *BaseTableService, m *metrics.Metrics, err error) {
				require.NoError(t, err)

				table, err := s.Table()
				require.NoError(t, err)
				assert.Equal(t, 2, table.Len())
				assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), *table.LastDate())

				assert.Equal(t, 2.0, testutil.ToFloat64(m.BaseTableRows))
				assert.Equal(t, 1.0, testutil.ToFloat64(m.BaseReloads.WithLabelValues(metrics.OutcomeOK)))
			},
		},
		{
			name: "Falha antes da primeira carga mantém a base indisponível",
			setup: func(repo *mocks.MockInsertionRepository) {
				repo.EXPECT().ListInsertions(gomock.Any()).Return(nil, errors.New("conexão recusada"))
			},
			validate: func(t *testing.T, s *BaseTableService, m *metrics.Metrics, err error) {
				assert.ErrorContains(t, err, "conexão recusada")

				_, err = s.Table()
				assert.ErrorIs(t, err, domain.ErrBaseNotLoaded)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.BaseReloads.WithLabelValues(metrics.OutcomeError)))
				assert.Equal(t, "erro ao carregar inserções: conexão recusada", s.GetStatus()["last_error"])
			},
		},
		{
			name: "Falha após uma carga mantém a tabela anterior",
			setup: func(repo *mocks.MockInsertionRepository) {
				gomock.InOrder(
					repo.EXPECT().ListInsertions(gomock.Any()).Return(rawRows(), nil),
					repo.EXPECT().ListInsertions(gomock.Any()).Return(nil, errors.New("timeout")),
				)
			},
			validate: func(t *testing.T, s *BaseTableService, m *metrics.Metrics, err error) {
				require.NoError(t, err)
				before, _ := s.Table()

				err = s.Reload(context.Background())
				assert.Error(t, err)

				after, err := s.Table()
				require.NoError(t, err)
				assert.Same(t, before, after)
				assert.Equal(t, 2.0, testutil.ToFloat64(m.BaseTableRows))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, m := newBaseTableService(t)
			tt.setup(repo)

			err := s.Reload(context.Background())
			tt.validate(t, s, m, err)
		})
	}
}

func TestBaseTableService_TableBeforeLoad(t *testing.T) {
	s, _, _ := newBaseTableService(t)

	table, err := s.Table()
	assert.Nil(t, table)
	assert.ErrorIs(t, err, domain.ErrBaseNotLoaded)

	status := s.GetStatus()
	assert.Equal(t, false, status["loaded"])
	assert.Equal(t, 0, status["rows"])
	assert.Equal(t, false, status["sync_enabled"])
}

func TestBaseTableService_StartDisabledLoadsOnce(t *testing.T) {
	s, repo, _ := newBaseTableService(t)
	repo.EXPECT().ListInsertions(gomock.Any()).Return(rawRows(), nil).Times(1)

	require.NoError(t, s.Start(context.Background()))

	table, err := s.Table()
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 2, s.GetStatus()["rows"])
}
