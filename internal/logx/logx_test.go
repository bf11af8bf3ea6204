package logx

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFields_Constructors(t *testing.T) {
	now := time.Now()

	require.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	require.Equal(t, Field{Key: "k", Value: 1}, Int("k", 1))
	require.Equal(t, Field{Key: "k", Value: 1.5}, Float64("k", 1.5))
	require.Equal(t, Field{Key: "k", Value: true}, Bool("k", true))
	require.Equal(t, Field{Key: "k", Value: now}, Time("k", now))
	require.Equal(t, Field{Key: "k", Value: time.Second}, Duration("k", time.Second))
	require.Equal(t, Field{Key: "err", Value: "boom"}, Err(errors.New("boom")))
	require.Equal(t, Field{Key: "err", Value: ""}, Err(nil))
}

func TestNopLogger_NoPanic(t *testing.T) {
	l := Nop()
	l.Debug("d", String("k", "v"))
	l.Info("i", Int("n", 1))
	l.Warn("w")
	l.Error("e")

	l2 := l.With(String("x", "y"))
	require.NotNil(t, l2)

	require.NoError(t, l.Sync())
	require.NoError(t, l2.Sync())
}

func TestSlogAdapter_WithAndToSlogArgs(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	l := NewSlogAdapter(base)

	args := toSlogArgs([]Field{
		String("a", "b"),
		Int("n", 1),
	})
	require.Len(t, args, 2)

	l2 := l.With(String("x", "y"))
	require.NotNil(t, l2)

	l2.Info("msg", String("k", "v"))
	l2.Warn("msg")
	l2.Error("msg")
	l2.Debug("msg")
	require.NoError(t, l2.Sync())
}

func TestZapAdapter_ForwardsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapAdapter(zap.New(core)).With(String("component", "dispatch"))

	l.Info("driver assigned", String("order_id", "ORD-1"), Int("attempt", 2))
	l.Warn("slow")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "driver assigned", entries[0].Message)

	ctx := entries[0].ContextMap()
	require.Equal(t, "dispatch", ctx["component"])
	require.Equal(t, "ORD-1", ctx["order_id"])
	require.EqualValues(t, 2, ctx["attempt"])
}

func TestNewZap_LevelParsing(t *testing.T) {
	l := NewZap(ZapOptions{Level: "error"})
	require.NotNil(t, l)
	l.Info("dropped")
}

func TestParseSlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseSlogLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseSlogLevel(" warn "))
	require.Equal(t, slog.LevelError, parseSlogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseSlogLevel("whatever"))
	require.NotNil(t, NewSlogJSON(io.Discard, "debug"))
}
