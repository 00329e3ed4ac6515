package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crowley-insights-api/infrastructure/export"
	"github.com/vfg2006/crowley-insights-api/internal/api/handler/router"
	"github.com/vfg2006/crowley-insights-api/internal/dataset"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/paginating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/crowley-insights-api/pkg/apiErrors"
	"github.com/vfg2006/crowley-insights-api/pkg/metrics"
	"github.com/xuri/excelize/v2"
)

type fakeBase struct {
	table *dataset.Table
	err   error
}

func (f *fakeBase) Table() (*dataset.Table, error) {
	return f.table, f.err
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

// A só em R1, B em R1 e R2, C só em R2
func baseTable() *dataset.Table {
	rows := []struct {
		advertiser, vehicle string
		day, n              int
	}{
		{"A", "R1", 5, 10},
		{"B", "R1", 6, 5},
		{"B", "R2", 7, 8},
		{"C", "R2", 8, 3},
	}

	raw := make([]domain.RawInsertion, 0)
	for _, r := range rows {
		for i := 0; i < r.n; i++ {
			date := day(r.day)
			volume := 1
			raw = append(raw, domain.RawInsertion{
				Market:     "SP",
				Vehicle:    r.vehicle,
				Advertiser: r.advertiser,
				Creative:   r.advertiser + "-30s",
				Duration:   30,
				DateTime:   &date,
				Type:       "Comercial",
				DayPart:    "Manhã",
				Volume:     &volume,
			})
		}
	}
	return dataset.Load(raw)
}

func newReporting(base reporting.BaseProvider) *reporting.Service {
	return reporting.NewReportingService(base, reporting.Config{
		MinDate:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DefaultWindowDays: 30,
		Limits:            paginating.DefaultLimits(),
	}, metrics.New())
}

func newRouter(service reporting.ReportingService) http.Handler {
	return router.New(
		router.WithRoutes(Filters(service)...),
		router.WithRoutes(Reports(service, export.NewWorkbookWriter())...),
	)
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestQueryList(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?types=Comercial,%20Merchan,,&empty=", nil)
	q := req.URL.Query()

	assert.Equal(t, []string{"Comercial", "Merchan"}, queryList(q, "types"))
	assert.Nil(t, queryList(q, "empty"))
	assert.Nil(t, queryList(q, "missing"))
}

func TestFilterContextParsing(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
		check     func(t *testing.T, f domain.FilterContext)
	}{
		{
			name:  "Filtro completo com referência",
			query: "market=SP&vehicle=R1&start_date=2024-03-01&end_date=2024-03-08&ref_start_date=2024-02-01&ref_end_date=2024-02-28&competitors=R2,R3&types=Comercial",
			check: func(t *testing.T, f domain.FilterContext) {
				assert.Equal(t, "SP", f.Market)
				assert.Equal(t, day(1), f.Current.Start)
				assert.Equal(t, day(8), f.Current.End)
				require.NotNil(t, f.Reference)
				assert.Equal(t, time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), f.Reference.End)
				assert.Equal(t, []string{"R2", "R3"}, f.Competitors)
			},
		},
		{
			name:  "Sem referência",
			query: "market=SP&start_date=2024-03-01&end_date=2024-03-08",
			check: func(t *testing.T, f domain.FilterContext) {
				assert.Nil(t, f.Reference)
				assert.True(t, f.IsConsolidated())
			},
		},
		{
			name:      "Data em formato local",
			query:     "market=SP&start_date=01/03/2024",
			wantField: "start_date",
		},
		{
			name:      "Referência inválida",
			query:     "market=SP&start_date=2024-03-01&end_date=2024-03-08&ref_end_date=ontem",
			wantField: "ref_end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			filter, err := filterContext(req)

			if tt.wantField != "" {
				var cfg *domain.ConfigError
				require.ErrorAs(t, err, &cfg)
				assert.Equal(t, tt.wantField, cfg.Field)
				return
			}

			require.NoError(t, err)
			tt.check(t, filter)
		})
	}
}

func TestPresenceFilterParsing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?year=2024&month=3&market=SP&vehicle=R1&days=5,1&page=2", nil)
	filter, page, err := presenceFilter(req)
	require.NoError(t, err)

	assert.Equal(t, 2024, filter.Year)
	assert.Equal(t, 3, filter.Month)
	assert.Equal(t, []int{5, 1}, filter.Days)
	assert.Equal(t, 2, page)

	req = httptest.NewRequest(http.MethodGet, "/?year=2024&month=3&days=cinco", nil)
	_, _, err = presenceFilter(req)
	assert.True(t, domain.IsConfigError(err))
}

func TestGetCampaignFlow(t *testing.T) {
	rt := newRouter(newReporting(&fakeBase{table: baseTable()}))

	req := httptest.NewRequest(http.MethodGet,
		"/v1/reports/campaign-flow?market=SP&vehicle=R1&start_date=2024-03-01&end_date=2024-03-08", nil)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Report domain.CampaignFlowReport `json:"report"`
		Grids  []domain.Grid             `json:"grids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, []string{"A"}, body.Report.Exclusive)
	assert.Equal(t, []string{"B"}, body.Report.Shared)
	assert.Equal(t, []string{"C"}, body.Report.Absent)
	assert.NotEmpty(t, body.Grids)
}

func TestReportErrors(t *testing.T) {
	tests := []struct {
		name   string
		base   *fakeBase
		url    string
		status int
		code   string
	}{
		{
			name:   "Praça ausente",
			base:   &fakeBase{table: baseTable()},
			url:    "/v1/reports/opportunity-radar?start_date=2024-03-01&end_date=2024-03-08",
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidRequest,
		},
		{
			name:   "Data inválida",
			base:   &fakeBase{table: baseTable()},
			url:    "/v1/reports/performance-index?market=SP&start_date=marco",
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidRequest,
		},
		{
			name:   "Base ainda não carregada",
			base:   &fakeBase{err: domain.ErrBaseNotLoaded},
			url:    "/v1/reports/campaign-flow?market=SP&vehicle=R1&start_date=2024-03-01&end_date=2024-03-08",
			status: http.StatusServiceUnavailable,
			code:   apiErrors.ErrBaseUnavailable,
		},
		{
			name:   "Falha inesperada da base",
			base:   &fakeBase{err: errors.New("conexão recusada")},
			url:    "/v1/filters/options?market=SP",
			status: http.StatusInternalServerError,
			code:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newRouter(newReporting(tt.base))

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeAPIError(t, rec).Code)
		})
	}
}

func TestGetFilterOptions(t *testing.T) {
	rt := newRouter(newReporting(&fakeBase{table: baseTable()}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/filters/options?market=SP&start_date=2024-03-01&end_date=2024-03-08", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var options domain.FilterOptions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	assert.Equal(t, []string{"SP"}, options.Markets)
	assert.Contains(t, options.Vehicles, domain.ConsolidatedVehicle)
	assert.Contains(t, options.Vehicles, "R2")
	assert.Contains(t, options.PivotDimensions, dataset.FieldVehicle)
	assert.Contains(t, options.PivotMetrics, dataset.MetricVolume)
}

func TestExportCampaignFlow(t *testing.T) {
	rt := newRouter(newReporting(&fakeBase{table: baseTable()}))

	req := httptest.NewRequest(http.MethodGet,
		"/v1/reports/campaign-flow/export?market=SP&vehicle=R1&start_date=2024-03-01&end_date=2024-03-08", nil)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))

	disposition := rec.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="Crowley_Campaign_Flow_`))
	assert.True(t, strings.HasSuffix(disposition, `.xlsx"`))

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.NotEmpty(t, sheets)
	assert.Equal(t, export.FiltersSheet, sheets[0])
	assert.Contains(t, sheets, "Exclusivos")
	assert.Contains(t, sheets, "Detalhamento")
}

func TestExportWithoutData(t *testing.T) {
	rt := newRouter(newReporting(&fakeBase{table: baseTable()}))

	req := httptest.NewRequest(http.MethodGet,
		"/v1/reports/campaign-flow/export?market=RJ&vehicle=R1&start_date=2024-03-01&end_date=2024-03-08", nil)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status domain.ReportStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.NoData)
}

func TestPostCustom(t *testing.T) {
	rt := newRouter(newReporting(&fakeBase{table: baseTable()}))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{
			name:   "Pivot anunciante por veículo",
			body:   `{"rows":["advertiser"],"cols":["vehicle"],"metrics":["volume"],"col_margin":true,"start_date":"2024-03-01","end_date":"2024-03-08"}`,
			status: http.StatusOK,
		},
		{
			name:   "Corpo inválido",
			body:   `{"rows":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "Campo repetido em linhas e colunas",
			body:   `{"rows":["vehicle"],"cols":["vehicle"],"metrics":["volume"],"start_date":"2024-03-01","end_date":"2024-03-08"}`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/reports/custom", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestExportCustom(t *testing.T) {
	rt := newRouter(newReporting(&fakeBase{table: baseTable()}))

	body := `{"rows":["advertiser"],"metrics":["volume"],"start_date":"2024-03-01","end_date":"2024-03-08","filters":{"vehicle":["R2"]}}`
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/reports/custom/export", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[1])
	require.NoError(t, err)
	// Cabeçalho, B e C
	assert.Len(t, rows, 3)
}

type fakeSync struct {
	triggered int
}

func (f *fakeSync) TriggerManualSync() { f.triggered++ }

func (f *fakeSync) GetStatus() map[string]any {
	return map[string]any{"loaded": true, "rows": 26}
}

func TestCronJobs(t *testing.T) {
	sync := &fakeSync{}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CronJobTypeBase: sync})...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/base/run", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, sync.triggered)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/meta/run", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, sync.triggered)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status["base"]["loaded"])
}

type fakeAuthenticator struct {
	err error
}

func (f fakeAuthenticator) Login(string) (*domain.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.LoginResponse{Token: "token", ExpiresAt: 1}, nil
}

func (f fakeAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return nil, authenticating.ErrInvalidToken
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name   string
		auth   fakeAuthenticator
		body   string
		status int
		code   string
	}{
		{
			name:   "Senha correta",
			body:   `{"password":"segredo"}`,
			status: http.StatusOK,
		},
		{
			name:   "Senha incorreta",
			auth:   fakeAuthenticator{err: authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Senha incorreta")},
			body:   `{"password":"errada"}`,
			status: http.StatusUnauthorized,
			code:   apiErrors.ErrInvalidCredentials,
		},
		{
			name:   "Corpo malformado",
			body:   `senha`,
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := router.New(router.WithRoutes(Authentication(tt.auth)...))

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeAPIError(t, rec).Code)
				return
			}

			var resp domain.LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "token", resp.Token)
		})
	}
}

func TestRouteNotFound(t *testing.T) {
	rt := newRouter(newReporting(&fakeBase{table: baseTable()}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/inexistente", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrRouteNotFound, decodeAPIError(t, rec).Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/reports/custom", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
