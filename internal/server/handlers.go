package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rpgo/investment-simulator/internal/domain"
	"github.com/rpgo/investment-simulator/internal/metrics"
	"github.com/rpgo/investment-simulator/internal/output"
)

const maxRequestBody = 1 << 20

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"service": "investment-simulator",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleDefaults returns the example scenario used to prefill clients
func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.parser.CreateExampleParameters())
}

// handleSimulate runs a Monte Carlo simulation for the posted parameters.
// The response format defaults to JSON and can be changed with ?format=.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	params := domain.SimulationParameters{Volatility: domain.DefaultVolatility}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&params); err != nil {
		metrics.ObserveRun(metrics.OutcomeInvalid, 0, 0)
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if params.Workers == 0 {
		params.Workers = s.cfg.Workers
	}

	if err := s.validate(&params); err != nil {
		metrics.ObserveRun(metrics.OutcomeInvalid, params.NumSimulations, 0)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	result, err := s.simulator.RunSimulation(ctx, params)
	if err != nil {
		s.writeRunError(ctx, w, params, err)
		return
	}
	metrics.ObserveRun(metrics.OutcomeSuccess, len(result.Paths), result.Duration)

	if formatter.Name() == "json" {
		s.writeJSON(w, http.StatusOK, output.BuildReport(result))
		return
	}
	data, err := formatter.Format(result)
	if err != nil {
		s.log.Error().Err(err).Str("format", formatter.Name()).Msg("Failed to format result")
		s.writeError(w, http.StatusInternalServerError, "failed to format result")
		return
	}
	w.Header().Set("Content-Type", contentType(formatter.Name()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) validate(params *domain.SimulationParameters) error {
	if err := s.parser.ValidateParameters(params); err != nil {
		return err
	}
	if params.NumSimulations > s.cfg.MaxSimulations {
		return fmt.Errorf("%w: number of simulations is limited to %d on this server", domain.ErrInvalidParameter, s.cfg.MaxSimulations)
	}
	return nil
}

// writeRunError maps a failed run to one response. A run stopped by the request
// deadline gets 504 and one stopped by the client going away gets 503.
func (s *Server) writeRunError(ctx context.Context, w http.ResponseWriter, params domain.SimulationParameters, err error) {
	ctxErr := ctx.Err()
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		metrics.ObserveRun(metrics.OutcomeInvalid, params.NumSimulations, 0)
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(ctxErr, context.DeadlineExceeded):
		metrics.ObserveRun(metrics.OutcomeCanceled, params.NumSimulations, 0)
		s.writeError(w, http.StatusGatewayTimeout, "simulation timed out")
	case ctxErr != nil:
		metrics.ObserveRun(metrics.OutcomeCanceled, params.NumSimulations, 0)
		s.writeError(w, http.StatusServiceUnavailable, "simulation canceled")
	default:
		metrics.ObserveRun(metrics.OutcomeError, params.NumSimulations, 0)
		s.log.Error().Err(err).Msg("Simulation failed")
		s.writeError(w, http.StatusInternalServerError, "simulation failed")
	}
}

func contentType(format string) string {
	switch {
	case strings.Contains(format, "csv"):
		return "text/csv; charset=utf-8"
	case format == "html":
		return "text/html; charset=utf-8"
	case format == "yaml":
		return "application/yaml"
	case format == "msgpack":
		return "application/vnd.msgpack"
	default:
		return "text/plain; charset=utf-8"
	}
}

// writeJSON writes a JSON response. The body is encoded before the status is sent.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := output.EncodeJSON(data, "")
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
