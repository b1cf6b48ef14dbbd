package logic

import (
	"fmt"
)

// TypeError is a type checking failure attributed to a node.
type TypeError struct {
	NodeID ID
	Err    error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %v", e.NodeID, e.Err)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// UnresolvedError reports a name with no binding in scope.
type UnresolvedError struct {
	Name string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved name: %s", e.Name)
}

// ArgumentError reports a call whose arguments do not fit the callee.
type ArgumentError struct {
	Function string
	Message  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.Message)
}

// EvalError is an evaluation failure attributed to a node.
type EvalError struct {
	NodeID ID
	Err    error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %s: %v", e.NodeID, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
