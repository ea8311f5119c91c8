package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		name string
		want string
	}{
		{"debug level", "level=DEBUG"},
		{"debug message", "msg=dbg"},
		{"debug attr", "a=1"},
		{"info level", "level=INFO"},
		{"info message", "msg=inf"},
		{"warn level", "level=WARN"},
		{"error level", "level=ERROR"},
		{"error attr", "d=4"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !strings.Contains(out, tc.want) {
				t.Errorf("output does not contain %q:\n%s", tc.want, out)
			}
		})
	}
}

func TestSlogLogger_With_AddsPersistentAttrs(t *testing.T) {
	log, buf := newTestLogger(t)
	child := log.With("component", "session")

	child.Info(context.Background(), "hello")

	if !strings.Contains(buf.String(), "component=session") {
		t.Errorf("child logger output lacks persistent attribute:\n%s", buf.String())
	}
}
