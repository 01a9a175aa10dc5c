package logger

import (
	"bytes"
	"encoding/json"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, flush := New(Options{Level: "info", JSON: true, Out: &buf})
	l.Debug("hidden")
	l.Info("visible", zap.String("k", "v"))
	flush()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "ts")
}

func TestBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, flush := New(Options{Level: "loud", JSON: true, Out: &buf})
	l.Debug("hidden")
	l.Info("shown")
	flush()
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWriterBridges(t *testing.T) {
	var buf bytes.Buffer
	l, flush := New(Options{Level: "debug", JSON: true, Out: &buf})

	std := log.New(ToWriter(l, zapcore.WarnLevel), "", 0)
	std.Printf("slow query %dms", 250)

	errLog, err := ToStdLogger(l, zapcore.ErrorLevel)
	require.NoError(t, err)
	errLog.Print("tls handshake error")
	flush()

	out := buf.String()
	assert.Contains(t, out, `"slow query 250ms"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "tls handshake error")
	assert.Contains(t, out, `"level":"error"`)
}

func TestUnsampledKeepsEveryEntry(t *testing.T) {
	var buf bytes.Buffer
	l, flush := New(Options{Level: "info", JSON: true, Out: &buf})

	for i := 0; i < 300; i++ {
		l.Info("HTTP")
	}
	flush()
	sampled := bytes.Count(buf.Bytes(), []byte("\n"))
	assert.Less(t, sampled, 300)

	buf.Reset()
	access := Unsampled(l.Named("access").With(zap.String("svc", "api")))
	for i := 0; i < 300; i++ {
		access.Info("HTTP")
	}
	flush()
	assert.Equal(t, 300, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), `"svc":"api"`)
}
