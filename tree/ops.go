package tree

import (
	"fmt"
	"io"
	"log"
)

// Create allocates a new node of kind at path, installing it as an
// entry in its parent directory.
func (t *Tree) Create(path string, kind Kind) Status {
	path = trimLeadingSlash(path)
	parentPath, child, _ := Split(path)

	parentID, sess, ok := t.traverse(parentPath, lockWrite, nil)
	if !ok {
		sess.release(t.table)
		return InvalidParentDir
	}
	defer sess.release(t.table)

	parent := &t.table.nodes[parentID]
	if parent.kind != KindDirectory {
		return ParentNotDir
	}
	if t.cfg.MaxFileName > 0 && len(child) > t.cfg.MaxFileName {
		return CouldntAddEntry
	}
	if _, exists := findEntry(parent.entries, child); exists {
		return FileAlreadyExists
	}

	childID, ok := t.table.allocate(kind)
	if !ok {
		return CouldntAllocateInode
	}
	if !addEntry(parent.entries, child, childID) {
		// Rollback: the only place an operation frees something it
		// allocated before committing.
		t.table.release(childID)
		return CouldntAddEntry
	}
	return Success
}

// Delete removes the node at path from its parent directory and frees
// its slot. Deleting a non-empty directory fails.
func (t *Tree) Delete(path string) Status {
	path = trimLeadingSlash(path)
	parentPath, child, _ := Split(path)

	parentID, sess, ok := t.traverse(parentPath, lockWrite, nil)
	if !ok {
		sess.release(t.table)
		return InvalidParentDir
	}
	defer sess.release(t.table)

	parent := &t.table.nodes[parentID]
	if parent.kind != KindDirectory {
		return ParentNotDir
	}
	childID, exists := findEntry(parent.entries, child)
	if !exists {
		return DoesntExistInDir
	}

	childNode := &t.table.nodes[childID]
	childNode.mu.Lock()
	sess.add(childID, lockWrite)

	if childNode.kind == KindDirectory && !isEmpty(childNode.entries) {
		return DirNotEmpty
	}
	if !removeEntry(parent.entries, childID) {
		return FailedRemoveFromDir
	}
	if !t.table.release(childID) {
		return FailedDeleteInode
	}
	return Success
}

// Lookup resolves path to a node id. The returned id is advisory: as
// soon as Lookup returns, its locks are gone and a concurrent operation
// may delete or move the node.
func (t *Tree) Lookup(path string) (int, Status) {
	path = trimLeadingSlash(path)
	id, sess, ok := t.traverse(path, lockRead, nil)
	sess.release(t.table)
	if !ok {
		return 0, FileNotFound
	}
	return id, Success
}

// Move relocates the node named by src to dest, preserving its id and
// subtree. It pins both the source and destination parent directories
// in write mode using a deadlock-avoidance ordering: shallower path
// first, then the deeper one with the shallower's locks passed in as
// already-held; ties are broken by an unlocked probe of both parents,
// locking first the one whose probed id is larger (the source's parent
// when the two are equal). If dest's directory has no free entry, Move
// returns CouldntAddEntry and leaves the tree unchanged.
func (t *Tree) Move(src, dest string) Status {
	src = trimLeadingSlash(src)
	dest = trimLeadingSlash(dest)

	sParent, sChild, sDepth := Split(src)
	dParent, dChild, dDepth := Split(dest)

	if sParent == "" && sChild == dParent {
		return MoveToItself
	}

	var first, second *lockSession
	var sParentID, dParentID int
	var sOK, dOK bool

	switch {
	case sDepth < dDepth:
		sParentID, first, sOK = t.traverse(sParent, lockWrite, nil)
		dParentID, second, dOK = t.traverse(dParent, lockWrite, first)
	case sDepth > dDepth:
		dParentID, first, dOK = t.traverse(dParent, lockWrite, nil)
		sParentID, second, sOK = t.traverse(sParent, lockWrite, first)
	default:
		if t.probe(sParent) >= t.probe(dParent) {
			sParentID, first, sOK = t.traverse(sParent, lockWrite, nil)
			dParentID, second, dOK = t.traverse(dParent, lockWrite, first)
		} else {
			dParentID, first, dOK = t.traverse(dParent, lockWrite, nil)
			sParentID, second, sOK = t.traverse(sParent, lockWrite, first)
		}
	}

	sess := combined(first, second)
	defer sess.release(t.table)

	if !sOK || !dOK {
		return InvalidParentDir
	}

	dParentNode := &t.table.nodes[dParentID]
	if _, exists := findEntry(dParentNode.entries, dChild); dParentNode.kind != KindDirectory || exists {
		return FileAlreadyExists
	}

	sParentNode := &t.table.nodes[sParentID]
	movedID, found := findEntry(sParentNode.entries, sChild)
	if sParentNode.kind != KindDirectory || !found {
		return FileNotFound
	}

	removeEntry(sParentNode.entries, movedID)
	if !addEntry(dParentNode.entries, dChild, movedID) {
		// Relink the node in the source slot just freed.
		addEntry(sParentNode.entries, sChild, movedID)
		return CouldntAddEntry
	}
	return Success
}

// Print writes one line per node to w in depth-first pre-order,
// starting from root. Unlike the other operations, Print takes no
// locks of its own: the caller must either quiesce concurrent writers
// or hold a coarse external lock (see the syncwrap package) before
// calling it.
func (t *Tree) Print(w io.Writer) {
	t.printNode(w, RootID, "")
}

func (t *Tree) printNode(w io.Writer, id int, path string) {
	n := &t.table.nodes[id]
	switch n.kind {
	case KindFile:
		fmt.Fprintln(w, path)
	case KindDirectory:
		fmt.Fprintln(w, path)
		for _, e := range n.entries {
			if e.id == FreeID {
				continue
			}
			childPath := path + "/" + e.name
			if t.cfg.MaxPrintPathLen > 0 && len(childPath) > t.cfg.MaxPrintPathLen {
				log.Printf("lockfs: truncating path while printing tree (over %d bytes)", t.cfg.MaxPrintPathLen)
				childPath = childPath[:t.cfg.MaxPrintPathLen]
			}
			t.printNode(w, e.id, childPath)
		}
	}
}
