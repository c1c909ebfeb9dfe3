package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("ZeroValueNotInitialized", func(t *testing.T) {
		var l Logger
		assert.False(t, l.IsInitialized())
		assert.True(t, NewDiscardLogger().IsInitialized())
	})

	t.Run("WritesJSONWithNamespace", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := NewLogger(buf, false)
		l.WarnNs("convert", "row insert failed", KV{"row": 3})

		entry := map[string]any{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "row insert failed", entry["msg"])
		assert.Equal(t, "convert", entry["ns"])
		assert.Equal(t, float64(3), entry["row"])
	})

	t.Run("DebugFiltered", func(t *testing.T) {
		buf := &bytes.Buffer{}
		NewLogger(buf, false).Debug("hidden")
		assert.Empty(t, buf.String())

		NewLogger(buf, true).Debug("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("With", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := NewLogger(buf, false).With(KV{"runId": "abc"})
		l.Info("hello")
		assert.Contains(t, buf.String(), `"runId":"abc"`)
	})
}
