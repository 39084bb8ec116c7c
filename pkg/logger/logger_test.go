package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithServiceAndLevel(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Service: "worker", Out: &buf})

	l.Info().Msg("descartado")
	assert.Zero(t, buf.Len(), "info queda por debajo de warn")

	l.Warn().Str("topic", "ticket.responded").Msg("reintento")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "worker", line["service"])
	assert.Equal(t, "ticket.responded", line["topic"])
	assert.Contains(t, line, "time")

	buf.Reset()
	log.Error().Msg("global")
	assert.Contains(t, buf.String(), `"service":"worker"`, "el logger global queda redirigido")
}

func TestNew_DevelopmentIsReadable(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	New(Config{Env: "development", Level: "debug", Out: &buf}).Debug().Msg("hola")
	assert.Contains(t, buf.String(), "hola")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
