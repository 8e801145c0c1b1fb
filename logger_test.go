package knitvis

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestLogger(t *testing.T) {
	test.That(t, !Logger().Enabled(context.Background(), slog.LevelError))

	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	_, err := NewEmptyPattern(2, 2).Resize(4, 4)
	test.Error(t, err)
	test.That(t, strings.Contains(buf.String(), "pattern resized"), buf.String())
	test.That(t, strings.Contains(buf.String(), "to=4x4"), buf.String())

	SetLogger(nil)
	test.That(t, !Logger().Enabled(context.Background(), slog.LevelError))
}
