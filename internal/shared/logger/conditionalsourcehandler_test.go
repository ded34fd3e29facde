package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *slog.Logger)
		levels     []slog.Level
		wantSource bool
	}{
		{"info skipped", func(l *slog.Logger) { l.Info("raffle approved") }, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn annotated", func(l *slog.Logger) { l.Warn("lock contended") }, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error annotated", func(l *slog.Logger) { l.Error("oversell detected") }, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"info annotated in debug mode", func(l *slog.Logger) { l.Info("raffle approved") }, []slog.Level{slog.LevelInfo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), tt.levels...))

			tt.log(l)

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewConditionalSourceHandler(slog.NewTextHandler(&buf, nil), slog.LevelError))

	l.With("raffle_id", 7).WithGroup("reserve").Info("tickets reserved", "quantity", 2)

	out := buf.String()
	assert.Contains(t, out, "raffle_id=7")
	assert.Contains(t, out, "reserve.quantity=2")
	assert.NotContains(t, out, "source=")
}

func TestConditionalSourceHandler_Enabled(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	h := NewConditionalSourceHandler(base, slog.LevelError)

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
