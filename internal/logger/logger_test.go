package logger

import (
	"testing"

	"github.com/openshop-kr/journey-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Levels(t *testing.T) {
	log, err := NewLogger(&config.LoggingConfig{Level: "debug"}, &config.AppConfig{Name: "journey-api", Environment: "development"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = NewLogger(&config.LoggingConfig{Level: "loud", Format: "json"}, &config.AppConfig{Name: "journey-api", Environment: "production"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Component(zap.New(core), "payments").Info("payment requested")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "payments", entries[0].LoggerName)
	assert.Equal(t, "payments", entries[0].ContextMap()["component"])
}
