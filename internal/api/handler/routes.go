package handler

import (
	"net/http"

	"github.com/vfg2006/crowley-insights-api/infrastructure/export"
	"github.com/vfg2006/crowley-insights-api/internal/api/handler/router"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/reporting"
)

func Healthcheck(base BaseStatus) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(base),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Filters(service reporting.ReportingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/filters/options",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(service),
		},
	}
}

// Reports registra cada relatório e sua exportação. O httprouter não aceita um curinga
// ao lado de rotas fixas no mesmo nível, por isso cada exportação tem caminho próprio
func Reports(service reporting.ReportingService, writer export.Writer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/campaign-flow",
			Method:  http.MethodGet,
			Handler: GetCampaignFlow(service),
		},
		{
			Path:    "/v1/reports/campaign-flow/export",
			Method:  http.MethodGet,
			Handler: ExportCampaignFlow(service, writer),
		},
		{
			Path:    "/v1/reports/opportunity-radar",
			Method:  http.MethodGet,
			Handler: GetOpportunityRadar(service),
		},
		{
			Path:    "/v1/reports/opportunity-radar/export",
			Method:  http.MethodGet,
			Handler: ExportOpportunityRadar(service, writer),
		},
		{
			Path:    "/v1/reports/performance-index",
			Method:  http.MethodGet,
			Handler: GetPerformanceIndex(service),
		},
		{
			Path:    "/v1/reports/performance-index/export",
			Method:  http.MethodGet,
			Handler: ExportPerformanceIndex(service, writer),
		},
		{
			Path:    "/v1/reports/presence-map",
			Method:  http.MethodGet,
			Handler: GetPresenceMap(service),
		},
		{
			Path:    "/v1/reports/presence-map/export",
			Method:  http.MethodGet,
			Handler: ExportPresenceMap(service, writer),
		},
		{
			Path:    "/v1/reports/custom",
			Method:  http.MethodPost,
			Handler: PostCustom(service),
		},
		{
			Path:    "/v1/reports/custom/export",
			Method:  http.MethodPost,
			Handler: ExportCustom(service, writer),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
