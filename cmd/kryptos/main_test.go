package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/kryptos/pkg/errors"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     int
		wantText string
	}{
		{"success", nil, exitOK, ""},
		{"interrupted", fmt.Errorf("serve: %w", context.Canceled), exitInterrupted, ""},
		{"bad diameter", errors.New(errors.ErrCodeInvalidDiameter, "diameter 2000 exceeds 1024"), exitUsage, "diameter 2000 exceeds 1024"},
		{"bad config", errors.New(errors.ErrCodeInvalidConfig, "unknown backend"), exitUsage, "unknown backend"},
		{"missing key", errors.New(errors.ErrCodeNotFound, `key "x" not found`), exitFailure, `key "x" not found`},
		{"plain error", stderrors.New("dial tcp: refused"), exitFailure, "dial tcp: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := report(&buf, tt.err); got != tt.want {
				t.Errorf("report() = %d, want %d", got, tt.want)
			}
			out := buf.String()
			if tt.wantText == "" {
				if out != "" {
					t.Errorf("report() printed %q, want nothing", out)
				}
				return
			}
			if !strings.HasPrefix(out, "kryptos: ") || !strings.Contains(out, tt.wantText) {
				t.Errorf("report() printed %q, want kryptos-prefixed %q", out, tt.wantText)
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	if err := run(context.Background(), []string{"--version"}); err != nil {
		t.Fatalf("run(--version) error = %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run(context.Background(), []string{"decrypt"}); err == nil {
		t.Fatal("run(decrypt) should fail")
	}
}
