package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("grid built") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("grid built") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("grid built") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("grid built") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("scanned image tree", "folders", 3)

	out := buf.String()
	assert.Contains(t, out, "scanned image tree")
	assert.Contains(t, out, "folders=3")
	assert.Contains(t, out, "elapsed=")
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	assert.Same(t, logger, loggerFromContext(withLogger(context.Background(), logger)))
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
}

func TestPrinterWritesToErrorStream(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	out := statusOut(cmd)
	out.success("Stored %s", "k1")
	out.detail("%d bytes", 12)
	out.file("/tmp/kv.db")
	out.nextStep("Serve it", "kryptos serve")

	assert.Empty(t, stdout.String())
	got := stderr.String()
	for _, want := range []string{"Stored k1", "12 bytes", "/tmp/kv.db", "kryptos serve"} {
		assert.Contains(t, got, want)
	}
}
