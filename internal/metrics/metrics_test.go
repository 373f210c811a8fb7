package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveRun(t *testing.T) {
	beforeRuns := counterValue(t, SimulationRunsTotal.WithLabelValues(OutcomeSuccess))
	beforePaths := counterValue(t, PathsSimulatedTotal)

	ObserveRun(OutcomeSuccess, 250, 30*time.Millisecond)
	ObserveRun(OutcomeInvalid, 1000, 0)

	assert.Equal(t, beforeRuns+1, counterValue(t, SimulationRunsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, beforePaths+250, counterValue(t, PathsSimulatedTotal))
	assert.GreaterOrEqual(t, counterValue(t, SimulationRunsTotal.WithLabelValues(OutcomeInvalid)), 1.0)
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := counterValue(t, HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, counterValue(t, HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418")))
}

func TestHandlerServesMetrics(t *testing.T) {
	ObserveRun(OutcomeSuccess, 1, time.Millisecond)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "invsim_simulation_runs_total")
}
