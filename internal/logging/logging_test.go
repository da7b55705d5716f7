package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Str("entity", "task").Msg("shown")
	assert.Contains(t, buf.String(), `"entity":"task"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestNewWithWriterUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "chatty", false)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestGormLoggerWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	gl := GormLogger(NewWithWriter(&buf, "debug", false))

	gl.Warn(context.Background(), "slow %s", "query")
	assert.Contains(t, buf.String(), "slow query")
	assert.Contains(t, buf.String(), `"component":"gorm"`)
}
