package tree

// traverse descends from the root toward path, acquiring each
// non-target node's lock in read mode and the target's lock in mode.
// Locks already present in already (an earlier traversal's session,
// when this call is the second half of Move) are stepped over rather
// than re-acquired: the earlier traversal holds them at least as
// strongly as this one would need, since Move only ever asks for write
// locks on both parents.
//
// Every lock this call itself acquires is appended to the returned
// session in root-to-leaf order, so the caller can release everything
// it is responsible for in strict LIFO order (lock.go's release).
//
// Locks are retained deliberately, not released hand-over-hand, so that
// the operation layer can inspect the resolved node's payload after
// traverse returns and still be protected against a concurrent
// mutation between traversal and validation.
func (t *Tree) traverse(path string, mode lockMode, already *lockSession) (id int, sess *lockSession, ok bool) {
	sess = &lockSession{}
	parts := components(path)

	cur := RootID
	t.lockStep(cur, modeFor(0, len(parts), mode), already, sess)

	for i, name := range parts {
		n := &t.table.nodes[cur]
		childID, found := findEntry(n.entries, name)
		if !found {
			return 0, sess, false
		}

		t.lockStep(childID, modeFor(i+1, len(parts), mode), already, sess)
		cur = childID
	}

	return cur, sess, true
}

// modeFor reports which mode the node at position pos (0 == root) in a
// path of the given length should be locked in: write only if it is
// the target (the last node on the path), read otherwise.
func modeFor(pos, length int, targetMode lockMode) lockMode {
	if pos == length {
		return targetMode
	}
	return lockRead
}

// lockStep locks id in mode unless it is already held by already, in
// which case it records nothing (the earlier traversal remains
// responsible for releasing it).
func (t *Tree) lockStep(id int, mode lockMode, already, sess *lockSession) {
	if already != nil && already.held(id) {
		return
	}
	n := &t.table.nodes[id]
	if mode == lockWrite {
		n.mu.Lock()
	} else {
		n.mu.RLock()
	}
	sess.add(id, mode)
}

// probe is the unlocked-in-spirit lookup Move uses to break ties
// between two equal-depth parents: it resolves path to an id using the
// same hand-over-hand read-locking as traverse (so it never races
// unsafely with concurrent mutation at the Go memory-model level), but
// releases every lock before returning, so the result may already be
// stale by the time Move acts on it. That staleness only affects
// fairness of the lock-acquisition order, never correctness: the
// subsequent real traversals still retain their locks root-to-leaf in a
// way that is globally consistent regardless of what probe saw.
func (t *Tree) probe(path string) int {
	id, sess, ok := t.traverse(path, lockRead, nil)
	sess.release(t.table)
	if !ok {
		return -1
	}
	return id
}
