package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/crowley-insights-api/pkg/apiErrors"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
)

// CronJobTypeBase identifica a recarga da base de inserções
const CronJobTypeBase = "base"

// SyncService é um agendador que pode ser disparado manualmente
type SyncService interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os agendadores, por tipo, que podem ser executados manualmente
type CronJobServices map[string]SyncService

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		service, ok := services[cronType]
		if !ok || service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: base", map[string]string{
				"type": cronType,
			})
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("cron: execução manual solicitada")
		service.TriggerManualSync()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, service := range services {
			status[name] = service.GetStatus()
		}

		writeJSON(w, r, status)
	})
}
