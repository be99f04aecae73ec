package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/formkit/pkg/form"
	"github.com/vango-dev/formkit/pkg/protocol"
)

// tracerName is the instrumentation scope for session spans.
const tracerName = "github.com/vango-dev/formkit/pkg/server"

// pingInterval must be shorter than the read timeout so idle
// connections stay alive.
const pingInterval = 30 * time.Second

// Session drives one form instance over one WebSocket connection.
// All events are applied on the session's read goroutine, so the form
// has a single writer.
type Session struct {
	conn    *websocket.Conn
	form    FormHandle
	config  Config
	metrics *Metrics
	logger  *slog.Logger
	tracer  trace.Tracer

	// writeMu serializes writes between the read loop and the pinger.
	writeMu sync.Mutex

	closeOnce sync.Once
	done      chan struct{}
}

// newSession wraps an upgraded connection.
func newSession(conn *websocket.Conn, f FormHandle, config Config, metrics *Metrics) *Session {
	return &Session{
		conn:    conn,
		form:    f,
		config:  config,
		metrics: metrics,
		logger:  slog.Default().With("component", "session", "remote", conn.RemoteAddr().String()),
		tracer:  otel.Tracer(tracerName),
		done:    make(chan struct{}),
	}
}

// Run serves the session until the client disconnects or the context is
// canceled. It blocks.
func (s *Session) Run(ctx context.Context) {
	s.metrics.SessionOpened()
	defer s.metrics.SessionClosed()
	defer s.close()

	go s.pingLoop()
	go func() {
		select {
		case <-ctx.Done():
			s.close()
		case <-s.done:
		}
	}()

	// Initial snapshot so the client starts from server truth.
	s.sendSnapshot()

	s.readLoop(ctx)
}

// close tears the connection down exactly once.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// readLoop reads, decodes and applies client events until the
// connection dies.
func (s *Session) readLoop(ctx context.Context) {
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.metrics.RecordWebSocketError("read")
				s.logger.Error("read error", "error", err)
			}
			return
		}

		event, err := protocol.DecodeEvent(msg)
		if err != nil {
			s.metrics.RecordEventError("decode")
			s.logger.Error("event decode error", "error", err)
			continue
		}

		s.applyEvent(ctx, event)
		s.sendSnapshot()
	}
}

// applyEvent dispatches one client event to the form.
func (s *Session) applyEvent(ctx context.Context, event *protocol.ClientEvent) {
	s.metrics.RecordEvent(string(event.Type))

	switch event.Type {
	case protocol.EventChange:
		s.form.HandleChange(event.Field, event.Value, form.InputKindFromString(event.Kind))

	case protocol.EventBlur:
		s.form.HandleBlur(event.Field)

	case protocol.EventSubmit:
		s.handleSubmit(ctx)

	case protocol.EventReset:
		s.form.ResetForm()

	case protocol.EventPatch:
		if err := s.form.ApplyMergePatch(event.Patch); err != nil {
			s.metrics.RecordEventError("patch")
			s.logger.Error("patch failed", "error", err)
		}
	}
}

// handleSubmit runs one submission attempt inside a span.
func (s *Session) handleSubmit(ctx context.Context) {
	spanCtx, span := s.tracer.Start(ctx, "formkit.submit",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	start := time.Now()
	ok := s.form.HandleSubmit(spanCtx)
	elapsed := time.Since(start).Seconds()

	state := s.form.Snapshot()
	span.SetAttributes(
		attribute.Int("formkit.submit_count", state.SubmitCount),
		attribute.Bool("formkit.valid", state.Valid),
	)

	switch {
	case ok:
		span.SetStatus(codes.Ok, "")
		s.metrics.RecordSubmission("success", elapsed)
	case !state.Valid:
		span.SetStatus(codes.Ok, "")
		s.metrics.RecordSubmission("invalid", elapsed)
	default:
		span.SetStatus(codes.Error, state.SubmitError)
		s.metrics.RecordSubmission("error", elapsed)
	}
}

// sendSnapshot pushes the current form state to the client.
func (s *Session) sendSnapshot() {
	state := s.form.Snapshot()
	data, err := protocol.EncodeSnapshot(&protocol.Snapshot{
		Values:      state.Values,
		Errors:      state.Errors,
		Touched:     state.Touched,
		Submitting:  state.Submitting,
		Valid:       state.Valid,
		SubmitCount: state.SubmitCount,
		SubmitError: state.SubmitError,
	})
	if err != nil {
		s.logger.Error("snapshot encode error", "error", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.metrics.RecordWebSocketError("write")
		s.logger.Error("write error", "error", err)
	}
}

// pingLoop keeps the connection alive while the client is idle.
func (s *Session) pingLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			err := s.conn.WriteMessage(websocket.PingMessage, nil)
			s.writeMu.Unlock()
			if err != nil {
				s.metrics.RecordWebSocketError("ping")
				return
			}
		}
	}
}
