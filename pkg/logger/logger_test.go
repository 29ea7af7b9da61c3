package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Campos fijos y niveles
// ──────────────────────────────────────────────────────────────────────────────

func TestNew_ProductionEmiteJSONConService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Service: "ais-api", Out: &buf})

	log.Info().Str("warehouse_id", "w1").Msg("pasada completada")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "ais-api", event["service"], "todos los eventos llevan el nombre del servicio")
	assert.Equal(t, "w1", event["warehouse_id"])
	assert.Equal(t, "pasada completada", event["message"])
	assert.Contains(t, event, "time")
}

func TestNew_SinServiceNoAgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Out: &buf})

	log.Info().Msg("sin servicio")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.NotContains(t, event, "service")
}

func TestNew_NivelFiltraEventosInferiores(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len(), "info queda por debajo de warn")

	log.Warn().Msg("emitido")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"desconocido", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLevel(tc.in), "nivel %q", tc.in)
	}
}
