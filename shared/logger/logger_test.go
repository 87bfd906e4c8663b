package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"lodging/config"
	"lodging/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original, level := log.Logger, zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{name: "trace", want: zerolog.TraceLevel},
		{name: "debug", want: zerolog.DebugLevel},
		{name: "warn", want: zerolog.WarnLevel},
		{name: "error", want: zerolog.ErrorLevel},
		{name: "disabled", want: zerolog.Disabled},
		{name: "", want: zerolog.InfoLevel},
		{name: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.Level(tt.name))
		})
	}
}

func TestInitWithWriter_ProductionWritesJSON(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "lodging"

	var buf bytes.Buffer
	logger.InitWithWriter(cfg, &buf)

	log.Info().Str("cacheKey", "revenue:monthly:3:2024").Msg("cache hit for monthly revenue")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "lodging", line["service"])
	assert.Equal(t, "revenue:monthly:3:2024", line["cacheKey"])
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestInitWithWriter_DevelopmentWritesConsole(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "warn"

	var buf bytes.Buffer
	logger.InitWithWriter(cfg, &buf)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger.ErrorWithStack(errors.New("failed to insert data (reservation)"))

	assert.Contains(t, buf.String(), "failed to insert data (reservation)")
}
