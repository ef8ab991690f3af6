package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/zero-day-ai/firecheck"
	"github.com/zero-day-ai/firecheck/firebase"
	"github.com/zero-day-ai/firecheck/parser"
	"github.com/zero-day-ai/firecheck/schema"
)

// Validation results recorded in firecheck_validations_total.
const (
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultError   = "error"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	format, err := parser.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "request"
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	report, err := s.checker.Check(r.Context(), firecheck.Document{Name: name, Data: data, Format: format})
	if err != nil {
		s.metrics.RecordValidation(resultError, nil)
		status := http.StatusInternalServerError
		if errors.Is(err, firecheck.ErrInvalidDocument) {
			status = http.StatusBadRequest
		}
		s.writeError(w, r, status, err)
		return
	}

	status, result := http.StatusOK, resultValid
	if !report.Valid {
		status, result = http.StatusUnprocessableEntity, resultInvalid
	}
	s.metrics.RecordValidation(result, report.Violations)
	s.writeJSON(w, status, report)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	data, found, err := s.schemaDocument(section)
	if !found {
		s.writeError(w, r, http.StatusNotFound, errors.New("unknown section "+section))
		return
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// schemaDocument renders the checker's schema, or one top-level field of it
// when section is set. found is false for an unknown section.
func (s *Server) schemaDocument(section string) (data []byte, found bool, err error) {
	root := s.checker.Schema()
	if root == schema.Node(firebase.Schema()) {
		if section != "" {
			if _, ok := firebase.Section(section); !ok {
				return nil, false, nil
			}
		}
		data, err = firebase.JSONSchema(section)
		return data, true, err
	}

	if section == "" {
		data, err = schema.MarshalJSONSchema(root, "")
		return data, true, err
	}
	obj, ok := root.(*schema.ObjectNode)
	if !ok {
		return nil, false, nil
	}
	f, ok := obj.Field(section)
	if !ok {
		return nil, false, nil
	}
	data, err = schema.MarshalJSONSchema(f.Node, section)
	return data, true, err
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if err := s.config.Cache.Ping(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("readiness check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("cache unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}
