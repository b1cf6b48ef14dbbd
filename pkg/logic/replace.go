package logic

// IdentityPolicy decides the identity of a composite node that is rebuilt
// because one of its descendants was replaced.
type IdentityPolicy func(old ID) ID

var (
	// FreshAncestors gives every rebuilt ancestor a new identity. Selection
	// state keyed by an ancestor's ID does not survive an edit below it.
	FreshAncestors IdentityPolicy = func(ID) ID { return NewID() }

	// StableAncestors keeps ancestor identities across edits.
	StableAncestors IdentityPolicy = func(old ID) ID { return old }
)

// Find returns the node with the given identity.
func Find(tree Node, id ID) (Node, bool) {
	if tree.NodeID() == id {
		return tree, true
	}
	for _, c := range Children(tree) {
		if n, ok := Find(c, id); ok {
			return n, true
		}
	}
	return nil, false
}

// Replace swaps the node identified by id for replacement, rebuilding its
// ancestors under the FreshAncestors policy. The tree is returned as-is when
// id is absent or when replacement belongs to a different category than the
// node it would replace.
func Replace(tree Node, id ID, replacement Node) Node {
	return ReplaceWithPolicy(tree, id, replacement, FreshAncestors)
}

// ReplaceWithPolicy is Replace with a caller-chosen identity policy for the
// rebuilt ancestors.
func ReplaceWithPolicy(tree Node, id ID, replacement Node, policy IdentityPolicy) Node {
	out, changed := replaceNode(tree, id, replacement, policy)
	if !changed {
		return tree
	}
	return out
}

func replaceNode(n Node, id ID, replacement Node, policy IdentityPolicy) (Node, bool) {
	if n.NodeID() == id {
		if CategoryOf(n) != CategoryOf(replacement) {
			return n, false
		}
		return replacement, true
	}
	var changed bool
	rebuilt := n.mapChildren(func(c Node) Node {
		if changed {
			return c
		}
		out, ok := replaceNode(c, id, replacement, policy)
		changed = ok
		return out
	})
	if !changed {
		return n, false
	}
	return rebuilt.withID(policy(n.NodeID())), true
}

// PathTo returns the chain of nodes from the root down to and including the
// node with the given identity, or nil if it is absent.
func PathTo(tree Node, id ID) []Node {
	if tree.NodeID() == id {
		return []Node{tree}
	}
	for _, c := range Children(tree) {
		if path := PathTo(c, id); path != nil {
			return append([]Node{tree}, path...)
		}
	}
	return nil
}

// Parent returns the direct parent of the node with the given identity.
func Parent(tree Node, id ID) (Node, bool) {
	path := PathTo(tree, id)
	if len(path) < 2 {
		return nil, false
	}
	return path[len(path)-2], true
}

// Replace returns a copy of the program with the edit applied.
func (p *Program) Replace(id ID, replacement Node) *Program {
	return Replace(p, id, replacement).(*Program)
}

// Find is Find rooted at the program.
func (p *Program) Find(id ID) (Node, bool) {
	return Find(p, id)
}
