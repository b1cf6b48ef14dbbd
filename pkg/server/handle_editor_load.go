package server

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/vito/logic/pkg/logic"
)

func (h *Handler) handleEditorLoad(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}

	var params LoadParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	program, err := logic.DecodeProgram(params.Program)
	if err != nil {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "decode program: %v", err)
	}

	h.session.Load(ctx, program)
	h.logger.InfoContext(ctx, "loaded program", "statements", program.Block.Len())
	return h.state()
}

func (h *Handler) handleEditorState(ctx context.Context, req *jrpc2.Request) (any, error) {
	return h.state()
}

func (h *Handler) handleEditorUndo(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !h.session.Undo(ctx) {
		return nil, jrpc2.Errorf(jrpc2.InvalidRequest, "nothing to undo")
	}
	return h.state()
}
