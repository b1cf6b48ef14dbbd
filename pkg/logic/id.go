package logic

import "github.com/google/uuid"

// ID identifies a syntax node. IDs are random UUIDs, so they are unique for
// the lifetime of the process and are never reused.
type ID string

// NewID allocates a fresh node identity.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string {
	return string(id)
}
