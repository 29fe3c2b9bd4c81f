package metrics_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash"
	"github.com/xy-planning-network/cryptodash/metrics"
)

func TestNavigation(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()
	m := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace("test"))

	// Act
	m.Navigated("CoinDetail")
	m.Navigated("CoinDetail")
	m.Redirected()
	m.ViewLoaded("CoinDetail", 10*time.Millisecond, nil)
	m.ViewLoaded("AdminPanel", time.Millisecond, fmt.Errorf("%w: chunk", cryptodash.ErrNotExist))
	m.ViewLoaded("AdminPanel", time.Millisecond, errors.New("boom"))

	// Assert
	expected := `
# HELP test_navigations_total Total number of committed navigations
# TYPE test_navigations_total counter
test_navigations_total{route="CoinDetail"} 2
# HELP test_redirects_total Total number of redirects followed while navigating
# TYPE test_redirects_total counter
test_redirects_total 1
# HELP test_view_loads_total Total number of view loads by result
# TYPE test_view_loads_total counter
test_view_loads_total{result="error",route="AdminPanel"} 1
test_view_loads_total{result="missing",route="AdminPanel"} 1
test_view_loads_total{result="ok",route="CoinDetail"} 1
`
	require.Nil(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_navigations_total", "test_redirects_total", "test_view_loads_total"))
	count, err := testutil.GatherAndCount(reg, "test_view_load_seconds")
	require.Nil(t, err)
	require.Equal(t, 2, count)
}

func TestHandler(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()
	metrics.New(metrics.WithRegistry(reg)).Navigated("CoinsList")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	// Act
	metrics.Handler(reg).ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	b, err := io.ReadAll(w.Body)
	require.Nil(t, err)
	require.Contains(t, string(b), `cryptodash_navigations_total{route="CoinsList"} 1`)
}
