package server

import (
	"context"

	"github.com/creachadair/jrpc2"
)

func (h *Handler) handleEditorPrefix(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}

	var params PrefixParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	if err := h.session.SetPrefix(params.Prefix); err != nil {
		return nil, sessionError(err)
	}
	return h.state()
}

func (h *Handler) handleEditorNext(ctx context.Context, req *jrpc2.Request) (any, error) {
	if err := h.session.SelectNext(); err != nil {
		return nil, sessionError(err)
	}
	return h.state()
}

func (h *Handler) handleEditorPrevious(ctx context.Context, req *jrpc2.Request) (any, error) {
	if err := h.session.SelectPrevious(); err != nil {
		return nil, sessionError(err)
	}
	return h.state()
}

func (h *Handler) handleEditorSelect(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params SelectParams
	if req.HasParams() {
		if err := req.UnmarshalParams(&params); err != nil {
			return nil, err
		}
	}

	var err error
	if params.Row != nil {
		err = h.session.Commit(ctx, *params.Row)
	} else {
		err = h.session.CommitHighlighted(ctx)
	}
	if err != nil {
		return nil, sessionError(err)
	}
	return h.state()
}
