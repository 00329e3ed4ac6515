package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, env string) *bytes.Buffer {
	t.Helper()
	t.Setenv("APP_ENV", env)

	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	previous := L
	L = &logger{entry: logrus.NewEntry(base)}
	t.Cleanup(func() { L = previous })

	return buf
}

func TestWithFieldsInDevelopment(t *testing.T) {
	buf := captureLogs(t, "development")

	L.WithFields(Fields{
		"report":    "campaign_flow",
		"market":    "SP",
		"internal":  "descartado",
		"base_rows": 10,
	}).Info("teste")

	out := buf.String()
	assert.Contains(t, out, `"report":"campaign_flow"`)
	assert.Contains(t, out, `"market":"SP"`)
	assert.Contains(t, out, `"base_rows":10`)
	assert.NotContains(t, out, "descartado")
}

func TestWithFieldInProduction(t *testing.T) {
	buf := captureLogs(t, "production")

	L.WithField("internal", "mantido").Info("teste")
	assert.Contains(t, buf.String(), `"internal":"mantido"`)
}

func TestCorrelationID(t *testing.T) {
	buf := captureLogs(t, "production")

	ctx, id := WithCorrelationID(context.Background())
	require.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))

	ForContext(ctx).Info("com correlação")
	assert.Contains(t, buf.String(), id)
}

func TestSetDevFields(t *testing.T) {
	t.Cleanup(func() { SetDevFields(DefaultDevFields) })

	tests := []struct {
		name     string
		fields   []string
		mantidos []string
		omitidos []string
	}{
		{
			name:     "lista configurada substitui a padrão",
			fields:   []string{"tenant", " job "},
			mantidos: []string{`"tenant":"x"`, `"job":"x"`},
			omitidos: []string{`"report":"x"`},
		},
		{
			name:     "lista vazia mantém correlation_id e prefixos",
			fields:   nil,
			mantidos: []string{`"correlation_id":"x"`, `"user_id":"x"`},
			omitidos: []string{`"market":"x"`, `"tenant":"x"`},
		},
		{
			name:     "lista padrão",
			fields:   DefaultDevFields,
			mantidos: []string{`"report":"x"`, `"market":"x"`},
			omitidos: []string{`"tenant":"x"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t, "development")
			SetDevFields(tt.fields)

			L.WithFields(Fields{
				"tenant":           "x",
				"job":              "x",
				"report":           "x",
				"market":           "x",
				"user_id":          "x",
				correlationIDField: "x",
			}).Info("teste")

			out := buf.String()
			for _, m := range tt.mantidos {
				assert.Contains(t, out, m)
			}
			for _, o := range tt.omitidos {
				assert.NotContains(t, out, o)
			}
		})
	}
}
