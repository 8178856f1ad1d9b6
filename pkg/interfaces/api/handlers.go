package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vsinha/ejector/pkg/application/dto"
	"github.com/vsinha/ejector/pkg/domain/entities"
	domainservices "github.com/vsinha/ejector/pkg/domain/services"
	"github.com/vsinha/ejector/pkg/interfaces/cli/output"
)

// errorResponse is the body of every non-2xx API reply
type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}

// PostSizing sizes the posted stream set and returns the result as JSON
func (s *Server) PostSizing(w http.ResponseWriter, req *http.Request) {
	result, ok := s.size(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PostSizingChart sizes the posted stream set and returns the flow chart as SVG
func (s *Server) PostSizingChart(w http.ResponseWriter, req *http.Request) {
	result, ok := s.size(w, req)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, output.NewFlowChart().GenerateSVG(result))
}

// GetAssumptions returns the constants the server sizes with
func (s *Server) GetAssumptions(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, s.sizer.Assumptions())
}

// GetHealth reports liveness
func (s *Server) GetHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// size decodes, validates and sizes one request. It writes the error reply
// itself and reports false when the caller should stop.
func (s *Server) size(w http.ResponseWriter, req *http.Request) (*dto.SizingResult, bool) {
	id := requestID(req.Context())

	var body dto.SizingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.reject(w, id, "malformed request", []string{err.Error()})
		return nil, false
	}

	input, err := body.ToSizingInput(s.defaultDischarge)
	if err != nil {
		s.reject(w, id, "invalid request", []string{err.Error()})
		return nil, false
	}

	validation := domainservices.NewStreamValidator().ValidateStreams(input.Streams)
	if !validation.Valid() {
		s.reject(w, id, "invalid stream set", validation.Errors)
		return nil, false
	}
	if len(validation.Warnings) > 0 {
		s.logger.Debugw("stream warnings", "request_id", id, "warnings", validation.Warnings)
	}

	start := time.Now()
	result, err := s.sizer.SizeEjector(req.Context(), input)
	elapsed := time.Since(start)

	if errors.Is(err, entities.ErrInsufficientInput) {
		if s.metrics != nil {
			s.metrics.ObserveInsufficient(len(validation.Unspecified), elapsed)
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "insufficient input",
			Message: output.InsufficientInputMessage,
		})
		return nil, false
	}
	if err != nil {
		s.logger.Errorw("sizing failed", "request_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sizing failed"})
		return nil, false
	}

	if !result.GeometryDefined() {
		if s.metrics != nil {
			s.metrics.ObserveUndefined(len(result.ExcludedStreams), elapsed)
		}
		s.logger.Infow("sizing has no finite geometry",
			"request_id", id,
			"average_density", result.AverageDensity,
		)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "undefined geometry",
			Message: output.UndefinedGeometryMessage,
		})
		return nil, false
	}

	if s.metrics != nil {
		s.metrics.ObserveSized(result.ThroatDiameter, len(result.ExcludedStreams), elapsed)
	}
	s.logger.Infow("sized ejector",
		"request_id", id,
		"throat_diameter_in", result.ThroatDiameter,
		"streams", result.IncludedCount(),
	)

	return result, true
}

func (s *Server) reject(w http.ResponseWriter, id, reason string, details []string) {
	if s.metrics != nil {
		s.metrics.ObserveRejected()
	}
	s.logger.Infow("rejected sizing request", "request_id", id, "reason", reason, "details", strings.Join(details, "; "))
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: reason, Details: details})
}

// writeJSON encodes v before committing the status so an encoding failure
// still gets a proper 500
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		json.NewEncoder(&buf).Encode(errorResponse{Error: "failed to encode response", Message: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
