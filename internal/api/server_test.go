package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crowley-insights-api/internal/config"
	"github.com/vfg2006/crowley-insights-api/internal/scheduler"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/paginating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/crowley-insights-api/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) (*Server, authenticating.Authenticator) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Server:     config.Server{Host: "localhost", Port: "0"},
		Auth:       config.Auth{Secret: "chave", AppPasswordHash: string(hash), TokenTTL: time.Hour},
		Cors:       config.Cors{AllowedOrigins: []string{"http://localhost:3000"}},
		BaseReload: config.BaseReload{Interval: time.Hour},
		Limits:     paginating.DefaultLimits(),
	}

	m := metrics.New()
	base := scheduler.NewBaseTableService(nil, m, cfg)
	auth := authenticating.NewService(cfg.Auth)
	service := reporting.NewReportingService(base, reporting.Config{DefaultWindowDays: 30, Limits: cfg.Limits}, m)

	srv, err := New(cfg, service, auth, base, m)
	require.NoError(t, err)
	return srv, auth
}

func TestServerRoutes(t *testing.T) {
	srv, auth := newTestServer(t)
	login, err := auth.Login("segredo")
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{name: "Healthcheck é público", method: http.MethodGet, path: "/healthcheck", status: http.StatusOK},
		{name: "Métricas são públicas", method: http.MethodGet, path: "/metrics", status: http.StatusOK},
		{name: "Relatório exige token", method: http.MethodGet, path: "/v1/filters/options", status: http.StatusUnauthorized},
		{name: "Token inválido", method: http.MethodGet, path: "/v1/filters/options", token: "abc", status: http.StatusUnauthorized},
		{name: "Base ainda não carregada", method: http.MethodGet, path: "/v1/filters/options", token: login.Token, status: http.StatusServiceUnavailable},
		{name: "Status das cron jobs", method: http.MethodGet, path: "/v1/cron/status", token: login.Token, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
		})
	}
}
