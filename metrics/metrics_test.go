package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveParse("player", 20*time.Millisecond, nil)
	m.ObserveParse("player", time.Millisecond, errors.New("shape"))
	m.ObserveFetch("http", time.Second, nil)
	m.ObserveFetch("", time.Second, errors.New("all failed"))
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `gridiron_parses_total{outcome="ok",page="player"} 1`)
	assert.Contains(t, body, `gridiron_parses_total{outcome="error",page="player"} 1`)
	assert.Contains(t, body, `gridiron_fetches_total{engine="none",outcome="error"} 1`)
	assert.Contains(t, body, `gridiron_cache_lookups_total{result="miss"} 2`)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveParse("player", 0, nil)
		m.ObserveFetch("http", 0, nil)
		m.ObserveCache(true)
	})
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
