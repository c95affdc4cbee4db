package obslog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yiruzz/topdowndp/obslog"
)

func TestConfigure_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	obslog.Configure(slog.LevelInfo, obslog.JSON, &buf)

	slog.Info("measurement done", "level", 1)

	out := buf.String()
	assert.Contains(t, out, `"msg":"measurement done"`)
	assert.Contains(t, out, `"level":1`)
}

func TestConfigure_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	obslog.Configure(slog.LevelWarn, obslog.Text, &buf)

	slog.Info("should be filtered")
	slog.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be filtered")
	assert.Contains(t, out, "should appear")
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, obslog.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, obslog.ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, obslog.ParseLevel("nonsense"))

	assert.Equal(t, obslog.JSON, obslog.ParseFormat("json"))
	assert.Equal(t, obslog.Text, obslog.ParseFormat("anything-else"))
}
