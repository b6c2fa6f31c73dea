package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.AddTokens(6)
	r.AddTokens(4)
	r.SetUnique(3)
	r.SetEmitted(2)
	r.Truncated(ReasonMinCount)
	r.SetDuration(1500 * time.Millisecond)

	assert.Equal(t, 10.0, testutil.ToFloat64(r.tokens))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.unique))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.emitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.truncations.WithLabelValues(ReasonMinCount)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.truncations.WithLabelValues(ReasonSize)))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.duration))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.AddTokens(42)

	path := filepath.Join(t.TempDir(), "vocab.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "vocab_tokens_processed_total 42")
}

func TestServerMetrics_Handler(t *testing.T) {
	m := NewServerMetrics()
	m.SetWords(7)
	m.Lookup(true)
	m.Lookup(false)
	m.Lookup(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `vocab_server_lookups_total{result="miss"} 2`)
	assert.Contains(t, body, "vocab_server_loaded_words 7")
}
