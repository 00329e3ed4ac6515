package handler

import (
	"net/http"

	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
)

// ReportResponse leva o relatório calculado e as grades prontas para exibição
type ReportResponse struct {
	Report any           `json:"report"`
	Grids  []domain.Grid `json:"grids"`
}

func GetFilterOptions(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		selection, err := filterSelection(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		options, err := service.FilterOptions(r.Context(), selection)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, options)
	})
}

func GetCampaignFlow(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, err := campaignFlow(r, service)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, ReportResponse{Report: report, Grids: reporting.Grids(reporting.CampaignFlowSheets(report))})
	})
}

func GetOpportunityRadar(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, err := opportunityRadar(r, service)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, ReportResponse{Report: report, Grids: reporting.Grids(reporting.OpportunityRadarSheets(report))})
	})
}

func GetPerformanceIndex(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, err := performanceIndex(r, service)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, ReportResponse{Report: report, Grids: reporting.Grids(reporting.PerformanceIndexSheets(report))})
	})
}

func GetPresenceMap(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, err := presenceMap(r, service)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, ReportResponse{Report: report, Grids: reporting.Grids(reporting.PresenceMapSheets(report))})
	})
}

func PostCustom(service reporting.ReportingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, err := custom(r, service)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"rows":       report.TotalRows,
			"columns":    report.TotalColumns,
			"is_preview": report.IsPreview,
		}).Debug("custom: pivot calculado")

		writeJSON(w, r, ReportResponse{Report: report, Grids: reporting.Grids(reporting.CustomSheets(report))})
	})
}

func campaignFlow(r *http.Request, service reporting.ReportingService) (*domain.CampaignFlowReport, error) {
	filter, err := filterContext(r)
	if err != nil {
		return nil, err
	}
	return service.CampaignFlow(r.Context(), filter, queryBool(r.URL.Query(), "share"))
}

func opportunityRadar(r *http.Request, service reporting.ReportingService) (*domain.OpportunityRadarReport, error) {
	filter, err := filterContext(r)
	if err != nil {
		return nil, err
	}
	return service.OpportunityRadar(r.Context(), filter)
}

func performanceIndex(r *http.Request, service reporting.ReportingService) (*domain.PerformanceIndexReport, error) {
	filter, err := filterContext(r)
	if err != nil {
		return nil, err
	}
	return service.PerformanceIndex(r.Context(), filter)
}

func presenceMap(r *http.Request, service reporting.ReportingService) (*domain.PresenceMapReport, error) {
	filter, page, err := presenceFilter(r)
	if err != nil {
		return nil, err
	}
	return service.PresenceMap(r.Context(), filter, page)
}

// CustomRequest é o corpo do relatório personalizado
type CustomRequest struct {
	Rows      []string            `json:"rows"`
	Cols      []string            `json:"cols"`
	Metrics   []string            `json:"metrics"`
	RowMargin bool                `json:"row_margin"`
	ColMargin bool                `json:"col_margin"`
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Filters   map[string][]string `json:"filters"`
}

func custom(r *http.Request, service reporting.ReportingService) (*domain.CustomReport, error) {
	var req CustomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, domain.NewConfigError("body", "formato de requisição inválido")
	}

	q := make(map[string][]string, 2)
	q["start_date"] = []string{req.StartDate}
	q["end_date"] = []string{req.EndDate}

	current, err := queryWindow(q, "start_date", "end_date")
	if err != nil {
		return nil, err
	}

	filter := domain.CustomFilter{Fields: req.Filters}
	if current != nil {
		filter.Current = *current
	}

	spec := domain.PivotSpec{
		Rows:      req.Rows,
		Cols:      req.Cols,
		Metrics:   req.Metrics,
		RowMargin: req.RowMargin,
		ColMargin: req.ColMargin,
	}

	return service.Custom(r.Context(), spec, filter)
}
