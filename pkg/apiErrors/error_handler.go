package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrInvalidToken       = "AUTH_006" // Token inválido
	ErrExpiredToken       = "AUTH_007" // Token expirado

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de recurso (4000-4999)
	ErrRouteNotFound    = "RES_001" // Rota inexistente
	ErrMethodNotAllowed = "RES_002" // Método não suportado na rota

	// Erros de capacidade e de dados (3000-3999)
	ErrCapacityExceeded = "CAP_001"  // Resultado acima dos limites de cálculo ou exportação
	ErrBaseUnavailable  = "DATA_001" // Base de inserções ainda não carregada

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrRouteNotFound:       http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrCapacityExceeded:    http.StatusUnprocessableEntity,
	ErrBaseUnavailable:     http.StatusServiceUnavailable,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusOf retorna o status HTTP de um código de erro
func StatusOf(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusOf(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro do domínio.
// Configuração inválida vira VAL_001 com o campo nos detalhes, excesso de tamanho vira CAP_001
// e base indisponível vira DATA_001; o restante é erro interno
func FromError(err error) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	var cfg *domain.ConfigError
	if errors.As(err, &cfg) {
		return APIError{
			Code:    ErrInvalidRequest,
			Message: cfg.Error(),
			Details: map[string]string{"field": cfg.Field},
		}
	}

	var capacity *domain.CapacityError
	if errors.As(err, &capacity) {
		return APIError{
			Code:    ErrCapacityExceeded,
			Message: capacity.Error(),
			Details: map[string]any{
				"dimension": capacity.Dimension,
				"estimate":  capacity.Estimate,
				"limit":     capacity.Limit,
			},
		}
	}

	if errors.Is(err, domain.ErrBaseNotLoaded) {
		return APIError{
			Code:    ErrBaseUnavailable,
			Message: "Base de inserções ainda não carregada",
		}
	}

	return APIError{
		Code:    ErrInternalServer,
		Message: "Erro interno ao processar a requisição",
	}
}

// WriteFromError traduz o erro e escreve a resposta
func WriteFromError(w http.ResponseWriter, err error) {
	apiErr := FromError(err)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
