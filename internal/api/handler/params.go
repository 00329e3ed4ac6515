package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
	"github.com/vfg2006/crowley-insights-api/pkg/apiErrors"
	"github.com/vfg2006/crowley-insights-api/pkg/log"
	"github.com/vfg2006/crowley-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// queryList lê uma lista separada por vírgulas, descartando itens vazios
func queryList(q url.Values, key string) []string {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}

	out := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func queryDate(q url.Values, key string) (time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return time.Time{}, nil
	}

	date, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, domain.NewConfigError(key, "data inválida %q, use AAAA-MM-DD", raw)
	}
	return *date, nil
}

func queryInt(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewConfigError(key, "número inválido %q", raw)
	}
	return v, nil
}

func queryBool(q url.Values, key string) bool {
	v, _ := strconv.ParseBool(q.Get(key))
	return v
}

func queryWindow(q url.Values, startKey, endKey string) (*domain.DateWindow, error) {
	start, err := queryDate(q, startKey)
	if err != nil {
		return nil, err
	}
	end, err := queryDate(q, endKey)
	if err != nil {
		return nil, err
	}

	if start.IsZero() && end.IsZero() {
		return nil, nil
	}
	return &domain.DateWindow{Start: start, End: end}, nil
}

// filterContext monta o filtro comum dos relatórios comparativos
func filterContext(r *http.Request) (domain.FilterContext, error) {
	q := r.URL.Query()

	filter := domain.FilterContext{
		Market:      q.Get("market"),
		Vehicle:     q.Get("vehicle"),
		Competitors: queryList(q, "competitors"),
		Advertisers: queryList(q, "advertisers"),
		Types:       queryList(q, "types"),
	}

	current, err := queryWindow(q, "start_date", "end_date")
	if err != nil {
		return filter, err
	}
	if current != nil {
		filter.Current = *current
	}

	reference, err := queryWindow(q, "ref_start_date", "ref_end_date")
	if err != nil {
		return filter, err
	}
	filter.Reference = reference

	return filter, nil
}

func presenceFilter(r *http.Request) (domain.PresenceFilter, int, error) {
	q := r.URL.Query()

	filter := domain.PresenceFilter{
		Market:      q.Get("market"),
		Vehicle:     q.Get("vehicle"),
		Advertisers: queryList(q, "advertisers"),
		Types:       queryList(q, "types"),
	}

	var err error
	if filter.Year, err = queryInt(q, "year"); err != nil {
		return filter, 0, err
	}
	if filter.Month, err = queryInt(q, "month"); err != nil {
		return filter, 0, err
	}

	for _, d := range queryList(q, "days") {
		v, err := strconv.Atoi(d)
		if err != nil {
			return filter, 0, domain.NewConfigError("days", "dia inválido %q", d)
		}
		filter.Days = append(filter.Days, v)
	}

	page, err := queryInt(q, "page")
	if err != nil {
		return filter, 0, err
	}

	return filter, page, nil
}

func filterSelection(r *http.Request) (domain.FilterSelection, error) {
	q := r.URL.Query()

	selection := domain.FilterSelection{
		Market:  q.Get("market"),
		Vehicle: q.Get("vehicle"),
		Types:   queryList(q, "types"),
	}

	current, err := queryWindow(q, "start_date", "end_date")
	if err != nil {
		return selection, err
	}
	selection.Current = current

	return selection, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("erro ao codificar resposta")
	}
}

// writeError registra e responde o erro já traduzido para o código da API
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apiErrors.FromError(err)
	logger := log.ForContext(r.Context()).WithError(err).WithField("code", apiErr.Code)

	if apiErrors.StatusOf(apiErr.Code) >= http.StatusInternalServerError {
		logger.Error("erro ao processar requisição")
	} else {
		logger.Warn("requisição rejeitada")
	}

	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
