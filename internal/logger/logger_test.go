package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Run("Should map known levels", func(t *testing.T) {
		cases := map[string]zapcore.Level{
			"debug": zapcore.DebugLevel,
			"INFO":  zapcore.InfoLevel,
			"":      zapcore.InfoLevel,
			"warn":  zapcore.WarnLevel,
			"error": zapcore.ErrorLevel,
		}
		for in, want := range cases {
			got, err := ParseLevel(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})
	t.Run("Should reject unknown level", func(t *testing.T) {
		_, err := ParseLevel("trace")
		assert.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	t.Run("Should filter below configured level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log, err := New(buf, "warn")
		require.NoError(t, err)
		log.Info("hidden")
		log.Warn("skipped malformed tag", zap.String("tag", "testing-2024-03-vbeta"))
		require.NoError(t, log.Sync())
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "skipped malformed tag")
		assert.Contains(t, buf.String(), "testing-2024-03-vbeta")
	})
}
