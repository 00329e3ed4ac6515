package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/crowley-insights-api/infrastructure/export"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
)

// bundleFunc calcula o relatório e devolve o pacote de exportação
type bundleFunc func(r *http.Request) (domain.ReportStatus, domain.ExportBundle, error)

func ExportCampaignFlow(service reporting.ReportingService, writer export.Writer) http.Handler {
	return exportHandler(writer, func(r *http.Request) (domain.ReportStatus, domain.ExportBundle, error) {
		report, err := campaignFlow(r, service)
		if err != nil {
			return domain.ReportStatus{}, domain.ExportBundle{}, err
		}
		return report.ReportStatus, reporting.CampaignFlowBundle(report), nil
	})
}

func ExportOpportunityRadar(service reporting.ReportingService, writer export.Writer) http.Handler {
	return exportHandler(writer, func(r *http.Request) (domain.ReportStatus, domain.ExportBundle, error) {
		report, err := opportunityRadar(r, service)
		if err != nil {
			return domain.ReportStatus{}, domain.ExportBundle{}, err
		}
		return report.ReportStatus, reporting.OpportunityRadarBundle(report), nil
	})
}

func ExportPerformanceIndex(service reporting.ReportingService, writer export.Writer) http.Handler {
	return exportHandler(writer, func(r *http.Request) (domain.ReportStatus, domain.ExportBundle, error) {
		report, err := performanceIndex(r, service)
		if err != nil {
			return domain.ReportStatus{}, domain.ExportBundle{}, err
		}
		return report.ReportStatus, reporting.PerformanceIndexBundle(report), nil
	})
}

func ExportPresenceMap(service reporting.ReportingService, writer export.Writer) http.Handler {
	return exportHandler(writer, func(r *http.Request) (domain.ReportStatus, domain.ExportBundle, error) {
		report, err := presenceMap(r, service)
		if err != nil {
			return domain.ReportStatus{}, domain.ExportBundle{}, err
		}
		return report.ReportStatus, reporting.PresenceMapBundle(report), nil
	})
}

func ExportCustom(service reporting.ReportingService, writer export.Writer) http.Handler {
	return exportHandler(writer, func(r *http.Request) (domain.ReportStatus, domain.ExportBundle, error) {
		report, err := custom(r, service)
		if err != nil {
			return domain.ReportStatus{}, domain.ExportBundle{}, err
		}
		if report.NoData {
			return report.ReportStatus, domain.ExportBundle{}, nil
		}

		bundle, err := reporting.CustomBundle(report, service.Limits())
		return report.ReportStatus, bundle, err
	})
}

// exportHandler gera a planilha em memória antes de responder, para que uma falha
// na escrita ainda possa virar uma resposta de erro
func exportHandler(writer export.Writer, build bundleFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status, bundle, err := build(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		// Sem dados não há planilha; o cliente recebe a mensagem do relatório
		if status.NoData {
			writeJSON(w, r, status)
			return
		}

		var buf bytes.Buffer
		if err := writer.Write(&buf, bundle); err != nil {
			writeError(w, r, errors.Wrap(err, "erro ao gerar planilha"))
			return
		}

		id, err := utils.GenerateID()
		if err != nil {
			writeError(w, r, errors.Wrap(err, "erro ao gerar nome do arquivo"))
			return
		}
		fileName := fmt.Sprintf("%s_%s%s", bundle.FileName, id, export.Extension)

		logger.WithFields(log.Fields{
			"file":   fileName,
			"sheets": len(bundle.Sheets),
			"bytes":  buf.Len(),
		}).Info("export: planilha gerada")

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		if _, err := buf.WriteTo(w); err != nil {
			logger.WithError(err).Error("export: erro ao enviar planilha")
		}
	})
}
