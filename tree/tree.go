package tree

// Tree is a namespace instance: an owned, independent node table plus
// the operations defined over it. It is an explicit handle a caller
// constructs and passes around, so multiple independent instances can
// coexist; that is what lets each test in this package build its own
// tree.
type Tree struct {
	table *Table
	cfg   Config
}

// New creates a namespace with the given configuration and allocates
// id 0 as the root directory (invariant 1).
func New(cfg Config) *Tree {
	return &Tree{table: newTable(cfg), cfg: cfg}
}

// Destroy releases every non-free slot's payload. After Destroy, t
// must not be used again.
func (t *Tree) Destroy() {
	for i := range t.table.nodes {
		n := &t.table.nodes[i]
		n.mu.Lock()
		n.kind = KindNone
		n.entries = nil
		n.mu.Unlock()
	}
}
