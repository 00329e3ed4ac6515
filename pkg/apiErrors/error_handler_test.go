package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

func TestWriteFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "configuração inválida",
			err:    domain.NewConfigError("market", "praça é obrigatória"),
			status: http.StatusBadRequest,
			code:   ErrInvalidRequest,
		},
		{
			name:   "capacidade excedida",
			err:    &domain.CapacityError{Dimension: domain.DimensionCells, Estimate: 10, Limit: 5},
			status: http.StatusUnprocessableEntity,
			code:   ErrCapacityExceeded,
		},
		{
			name:   "base não carregada envolvida",
			err:    errors.Wrap(domain.ErrBaseNotLoaded, "erro ao obter base"),
			status: http.StatusServiceUnavailable,
			code:   ErrBaseUnavailable,
		},
		{
			name:   "erro genérico",
			err:    errors.New("falha"),
			status: http.StatusInternalServerError,
			code:   ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteFromError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestFromErrorKeepsConfigField(t *testing.T) {
	apiErr := FromError(domain.NewConfigError("cols", "campo repetido"))

	assert.Equal(t, map[string]string{"field": "cols"}, apiErr.Details)
	assert.Contains(t, apiErr.Message, "campo repetido")
}

func TestStatusOfUnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf("XYZ"))
}
