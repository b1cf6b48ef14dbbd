// Package server exposes an editor session over JSON-RPC 2.0, so that an
// external view can drive activation, filtering and commits while the core
// owns the program.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/vito/logic/pkg/ioctx"
	"github.com/vito/logic/pkg/logic"
)

// Handler serves one editor session. Requests are handled strictly in
// order.
type Handler struct {
	mu      sync.Mutex
	session *logic.Session
	logger  *slog.Logger
}

// NewHandler creates a handler editing an empty program.
func NewHandler(ctx context.Context, opts logic.SessionOptions) *Handler {
	return &Handler{
		session: logic.NewSession(ctx, logic.NewProgram(logic.NewStatementPlaceholder()), opts),
		logger:  ioctx.LoggerFromContext(ctx),
	}
}

// Methods returns the method table to serve.
func (h *Handler) Methods() handler.Map {
	return handler.Map{
		"editor/load":       h.locked(h.handleEditorLoad),
		"editor/state":      h.locked(h.handleEditorState),
		"editor/activate":   h.locked(h.handleEditorActivate),
		"editor/prefix":     h.locked(h.handleEditorPrefix),
		"editor/select":     h.locked(h.handleEditorSelect),
		"editor/next":       h.locked(h.handleEditorNext),
		"editor/previous":   h.locked(h.handleEditorPrevious),
		"editor/escape":     h.locked(h.handleEditorEscape),
		"editor/breadcrumb": h.locked(h.handleEditorBreadcrumb),
		"editor/tab":        h.locked(h.handleEditorTab),
		"editor/undo":       h.locked(h.handleEditorUndo),
	}
}

func (h *Handler) locked(fn jrpc2.Handler) jrpc2.Handler {
	return func(ctx context.Context, req *jrpc2.Request) (any, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.logger.DebugContext(ctx, "handle", "method", req.Method())
		return fn(ctx, req)
	}
}

// Session returns the session being served. Callers must not use it while
// the server is running.
func (h *Handler) Session() *logic.Session {
	return h.session
}

func (h *Handler) state() (any, error) {
	return h.session.State(), nil
}

// sessionError converts session errors into protocol errors.
func sessionError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, logic.ErrNotActive):
		return jrpc2.Errorf(CodeNotActive, "%v", err)
	case errors.Is(err, logic.ErrUnknownNode), errors.Is(err, logic.ErrNotSelectable):
		return jrpc2.Errorf(jrpc2.InvalidParams, "%v", err)
	default:
		return jrpc2.Errorf(jrpc2.InvalidRequest, "%v", err)
	}
}

// Serve handles line-delimited requests from r, writing responses to w,
// until r is exhausted or ctx is canceled.
func Serve(ctx context.Context, r io.Reader, w io.WriteCloser, opts logic.SessionOptions) error {
	logger := ioctx.LoggerFromContext(ctx)
	h := NewHandler(ctx, opts)
	srv := jrpc2.NewServer(h.Methods(), &jrpc2.ServerOptions{
		Concurrency: 1,
		Logger:      func(text string) { logger.Debug(text) },
		NewContext:  func() context.Context { return ctx },
	})
	srv.Start(channel.Line(r, w))

	go func() {
		<-ctx.Done()
		srv.Stop()
	}()

	err := srv.Wait()
	logger.InfoContext(ctx, "editor server closed", "error", err)
	if errors.Is(err, io.EOF) || errors.Is(err, jrpc2.ErrConnClosed) {
		return nil
	}
	return err
}
