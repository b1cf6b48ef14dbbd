package logic

import (
	"bytes"
	"encoding/json"
	"iter"
)

// List is a persistent singly-linked list. The zero value is the empty list.
// Prepending is O(1) and the tail is shared with the original list.
type List[T any] struct {
	cell *cell[T]
}

type cell[T any] struct {
	head T
	tail List[T]
	len  int
}

// Empty returns the empty list.
func Empty[T any]() List[T] {
	return List[T]{}
}

// Cons returns a list with head in front of tail.
func Cons[T any](head T, tail List[T]) List[T] {
	return List[T]{cell: &cell[T]{head: head, tail: tail, len: tail.Len() + 1}}
}

// ListOf builds a list holding xs in the same order.
func ListOf[T any](xs ...T) List[T] {
	l := Empty[T]()
	for i := len(xs) - 1; i >= 0; i-- {
		l = Cons(xs[i], l)
	}
	return l
}

// Prepend is Cons with the receiver as the tail.
func (l List[T]) Prepend(head T) List[T] {
	return Cons(head, l)
}

func (l List[T]) IsEmpty() bool {
	return l.cell == nil
}

// Head returns the first element, if any.
func (l List[T]) Head() (T, bool) {
	if l.cell == nil {
		var zero T
		return zero, false
	}
	return l.cell.head, true
}

// Tail returns everything after the head. The tail of the empty list is
// empty.
func (l List[T]) Tail() List[T] {
	if l.cell == nil {
		return l
	}
	return l.cell.tail
}

func (l List[T]) Len() int {
	if l.cell == nil {
		return 0
	}
	return l.cell.len
}

// All iterates from head to last element.
func (l List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for c := l.cell; c != nil; c = c.tail.cell {
			if !yield(i, c.head) {
				return
			}
			i++
		}
	}
}

// Slice copies the list into a slice in list order.
func (l List[T]) Slice() []T {
	out := make([]T, 0, l.Len())
	for _, x := range l.All() {
		out = append(out, x)
	}
	return out
}

// Map returns a new list with f applied to every element.
func Map[T, U any](l List[T], f func(T) U) List[U] {
	xs := l.Slice()
	ys := make([]U, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ListOf(ys...)
}

// MarshalJSON encodes the list as a plain array.
func (l List[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Slice())
}

// decodeList decodes a JSON array element by element. Elements are
// collected first and consed from the back so the list keeps array order.
func decodeList[T any](raw json.RawMessage, decode func(json.RawMessage) (T, error)) (List[T], error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Empty[T](), nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Empty[T](), err
	}
	xs := make([]T, len(items))
	for i, item := range items {
		x, err := decode(item)
		if err != nil {
			return Empty[T](), err
		}
		xs[i] = x
	}
	return ListOf(xs...), nil
}
