package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/crowley-insights-api/pkg/log"
)

// BaseStatus informa se a base de inserções já foi carregada
type BaseStatus interface {
	GetStatus() map[string]any
}

// HealthcheckHandler responde o liveness junto com o estado da base em memória
func HealthcheckHandler(base BaseStatus) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{"time": time.Now().Format(time.RFC3339)}

		if base != nil {
			status := base.GetStatus()
			payload["base_loaded"] = status["loaded"]
			payload["base_rows"] = status["rows"]
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("error responding to healthcheck")
		}
	})
}
