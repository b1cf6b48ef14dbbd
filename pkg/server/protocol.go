package server

import (
	"encoding/json"

	"github.com/creachadair/jrpc2"
	"github.com/vito/logic/pkg/logic"
)

// CodeNotActive is returned for requests that need an active node.
const CodeNotActive jrpc2.Code = -32001

type LoadParams struct {
	// Program is an encoded program.
	Program json.RawMessage `json:"program"`
}

// ActivateParams names what to activate. Exactly one field is set.
type ActivateParams struct {
	ID      *logic.ID `json:"id,omitempty"`
	Element *int      `json:"element,omitempty"`
	Line    *int      `json:"line,omitempty"`
}

type PrefixParams struct {
	Prefix string `json:"prefix"`
}

// SelectParams commits a row of the suggestion window. Without a row the
// highlighted one is committed.
type SelectParams struct {
	Row *int `json:"row,omitempty"`
}

type BreadcrumbParams struct {
	Index int `json:"index"`
}

type TabParams struct {
	Backward bool `json:"backward,omitempty"`
}
