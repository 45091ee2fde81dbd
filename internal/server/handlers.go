package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/fibdev"
	"github.com/agbru/fibdev/internal/logging"
	"github.com/agbru/fibdev/internal/tracing"
)

// DefaultWriteLen is the buffer length used when a write names none.
const DefaultWriteLen = 32

// SessionResponse is returned by a successful open.
type SessionResponse struct {
	Handle   string `json:"handle"`
	Position int64  `json:"position"`
}

// SeekRequest is the body of a seek.
type SeekRequest struct {
	Offset int64  `json:"offset"`
	Whence string `json:"whence"`
}

// PositionResponse reports the position after a seek.
type PositionResponse struct {
	Position int64 `json:"position"`
}

// WriteResponse reports a delivered term. Value holds the delivered bytes up
// to the first NUL, so it is truncated when len was shorter than the term.
type WriteResponse struct {
	Value     string `json:"value"`
	ElapsedNs int64  `json:"elapsed_ns"`
	Position  int64  `json:"position"`
}

// ReadResponse is returned by the read stub.
type ReadResponse struct {
	Value int64 `json:"value"`
}

// HealthResponse reports liveness and whether the session is held.
type HealthResponse struct {
	Status string `json:"status"`
	Busy   bool   `json:"busy"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Errno string `json:"errno,omitempty"`
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.StartSpan(r.Context(), "fibdev.Open")
	h, err := s.dev.Open()
	tracing.End(span, err)
	if err != nil {
		s.writeDeviceError(ctx, w, err)
		return
	}
	s.addSession(h)
	s.writeJSON(w, http.StatusCreated, SessionResponse{
		Handle:   h.ID().String(),
		Position: h.Position(),
	})
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown handle", "")
		return
	}

	var req SeekRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid seek body: "+err.Error(), "")
		return
	}
	if req.Whence == "" {
		req.Whence = "set"
	}
	whence, ok := fibdev.ParseWhence(req.Whence)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid whence "+strconv.Quote(req.Whence), "")
		return
	}

	_, span := tracing.StartSpan(r.Context(), "fibdev.Seek",
		attribute.Int64("offset", req.Offset),
		attribute.String("whence", fibdev.WhenceName(whence)))
	sess.mu.Lock()
	pos, err := sess.h.Seek(req.Offset, whence)
	sess.mu.Unlock()
	span.SetAttributes(attribute.Int64("position", pos))
	tracing.End(span, err)

	s.writeJSON(w, http.StatusOK, PositionResponse{Position: pos})
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown handle", "")
		return
	}

	n := DefaultWriteLen
	if v := r.URL.Query().Get("len"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid len "+strconv.Quote(v), "")
			return
		}
		n = parsed
	}
	buf := make([]byte, min(n, s.cfg.Security.MaxWriteLen))

	ctx, span := tracing.StartSpan(r.Context(), "fibdev.Write", attribute.Int("len", n))
	sess.mu.Lock()
	pos := sess.h.Position()
	elapsed, err := sess.h.Write(buf, n)
	sess.mu.Unlock()
	span.SetAttributes(
		attribute.Int64("position", pos),
		attribute.Int64("elapsed_ns", elapsed))
	tracing.End(span, err)

	if err != nil {
		s.writeDeviceError(ctx, w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, WriteResponse{
		Value:     string(fibdev.TermText(buf)),
		ElapsedNs: elapsed,
		Position:  pos,
	})
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown handle", "")
		return
	}
	sess.mu.Lock()
	v := sess.h.Read(sess.h.Position())
	sess.mu.Unlock()
	s.writeJSON(w, http.StatusOK, ReadResponse{Value: v})
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.remove(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown handle", "")
		return
	}
	_, span := tracing.StartSpan(r.Context(), "fibdev.Release")
	sess.mu.Lock()
	sess.h.Release()
	sess.mu.Unlock()
	tracing.End(span, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Busy: s.dev.Busy()})
}

// statusForErrno maps a device errno to an HTTP status.
func statusForErrno(errno apperrors.Errno) int {
	switch errno {
	case apperrors.EBUSY:
		return http.StatusConflict
	case apperrors.ENOMEM:
		return http.StatusInsufficientStorage
	case apperrors.EFAULT:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeDeviceError maps err to a reply. The log entry carries the trace id
// of the failed operation's span when a tracer provider is installed.
func (s *Server) writeDeviceError(ctx context.Context, w http.ResponseWriter, err error) {
	fields := []logging.Field{}
	if id := tracing.TraceID(ctx); id != "" {
		fields = append(fields, logging.String("trace_id", id))
	}
	var devErr *apperrors.DeviceError
	if errors.As(err, &devErr) {
		s.logger.Debug("device refused request",
			append(fields, logging.String("errno", devErr.Errno.String()))...)
		s.writeError(w, statusForErrno(devErr.Errno), err.Error(), devErr.Errno.String())
		return
	}
	s.logger.Error("device operation failed", err, fields...)
	s.writeError(w, http.StatusInternalServerError, err.Error(), "")
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, errno string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg, Errno: errno})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", err, logging.Int("status", status))
	}
}
