package server

import (
	"context"

	"github.com/creachadair/jrpc2"
)

func (h *Handler) handleEditorActivate(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}

	var params ActivateParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	var err error
	switch {
	case params.ID != nil:
		err = h.session.Activate(*params.ID)
	case params.Element != nil:
		err = h.session.ActivateElement(*params.Element)
	case params.Line != nil:
		err = h.session.ActivateLine(*params.Line)
	default:
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "one of id, element or line is required")
	}
	if err != nil {
		return nil, sessionError(err)
	}
	return h.state()
}

func (h *Handler) handleEditorBreadcrumb(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params BreadcrumbParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	if err := h.session.ActivateBreadcrumb(params.Index); err != nil {
		return nil, sessionError(err)
	}
	return h.state()
}

func (h *Handler) handleEditorEscape(ctx context.Context, req *jrpc2.Request) (any, error) {
	h.session.Escape()
	return h.state()
}

func (h *Handler) handleEditorTab(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params TabParams
	if req.HasParams() {
		if err := req.UnmarshalParams(&params); err != nil {
			return nil, err
		}
	}

	move := h.session.NextElement
	if params.Backward {
		move = h.session.PreviousElement
	}
	if err := move(); err != nil {
		return nil, sessionError(err)
	}
	return h.state()
}
