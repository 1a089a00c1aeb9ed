// Package syncwrap offers collaborators a coarse-grained alternative to
// the tree package's per-node locking: a single outer lock guarding
// every call into a *tree.Tree. It is the same choice of global mutex,
// global rwlock, or no extra synchronization that command-line
// filesystem benchmarks traditionally expose as a sync-strategy flag;
// here it is a type a caller picks at construction time instead.
//
// tree.Tree already serializes conflicting accesses correctly on its
// own, so wrapping it is never required for correctness. It exists for
// callers who want to benchmark the per-node scheme against the coarse
// alternatives it is meant to beat.
package syncwrap

import (
	"io"
	"sync"

	"github.com/lockfs/lockfs/tree"
)

// Strategy selects how a Tree serializes access to the wrapped namespace.
type Strategy int

const (
	// StrategyNone disables the outer lock entirely, delegating all
	// synchronization to the wrapped tree.Tree's own per-node locks.
	StrategyNone Strategy = iota
	// StrategyMutex serializes every call behind one global mutex.
	StrategyMutex
	// StrategyRWMutex serializes writers behind one global writer lock
	// but allows Lookup/Print to run concurrently with each other.
	StrategyRWMutex
)

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyMutex:
		return "mutex"
	case StrategyRWMutex:
		return "rwlock"
	default:
		return "invalid"
	}
}

// ParseStrategy maps the traditional single-letter sync-strategy codes
// ('m', 'r', 'n') onto a Strategy, plus the obvious long-form spellings
// for a friendlier CLI.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "m", "mutex":
		return StrategyMutex, true
	case "r", "rwlock":
		return StrategyRWMutex, true
	case "n", "nosync", "none":
		return StrategyNone, true
	default:
		return 0, false
	}
}

// Tree wraps a *tree.Tree with the chosen outer locking strategy. The
// zero value is not usable; construct with Wrap.
type Tree struct {
	inner *tree.Tree
	strat Strategy
	mu    sync.Mutex
	rw    sync.RWMutex
}

// Wrap returns a Tree that serializes calls into inner according to
// strat. inner's own per-node locking still applies underneath.
func Wrap(inner *tree.Tree, strat Strategy) *Tree {
	return &Tree{inner: inner, strat: strat}
}

// Strategy reports the locking strategy t was constructed with.
func (t *Tree) Strategy() Strategy {
	return t.strat
}

func (t *Tree) writeLocked() func() {
	switch t.strat {
	case StrategyMutex:
		t.mu.Lock()
		return t.mu.Unlock
	case StrategyRWMutex:
		t.rw.Lock()
		return t.rw.Unlock
	default:
		return func() {}
	}
}

func (t *Tree) readLocked() func() {
	switch t.strat {
	case StrategyMutex:
		t.mu.Lock()
		return t.mu.Unlock
	case StrategyRWMutex:
		t.rw.RLock()
		return t.rw.RUnlock
	default:
		return func() {}
	}
}

func (t *Tree) Create(path string, kind tree.Kind) tree.Status {
	defer t.writeLocked()()
	return t.inner.Create(path, kind)
}

func (t *Tree) Delete(path string) tree.Status {
	defer t.writeLocked()()
	return t.inner.Delete(path)
}

func (t *Tree) Move(src, dest string) tree.Status {
	defer t.writeLocked()()
	return t.inner.Move(src, dest)
}

func (t *Tree) Lookup(path string) (int, tree.Status) {
	defer t.readLocked()()
	return t.inner.Lookup(path)
}

// Print holds the outer read lock for the duration of the dump,
// quiescing writers, which satisfies the requirement tree.Tree.Print's
// doc comment leaves to the caller.
func (t *Tree) Print(w io.Writer) {
	defer t.readLocked()()
	t.inner.Print(w)
}

// Destroy holds the outer write lock for the duration of the teardown.
func (t *Tree) Destroy() {
	defer t.writeLocked()()
	t.inner.Destroy()
}
