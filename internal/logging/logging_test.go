package logging

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", "json", &buf)
	t.Cleanup(func() { Setup("info", "text", nil) })

	log.WithField("report", "RPT-001").Debug("status changed")

	assert.Contains(t, buf.String(), `"message":"status changed"`)
	assert.Contains(t, buf.String(), `"report":"RPT-001"`)
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Setup("warn", "text", &buf)
	t.Cleanup(func() { Setup("info", "text", nil) })

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup("loud", "text", &buf)
	t.Cleanup(func() { Setup("info", "text", nil) })

	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
