package tree

// Randomized multi-goroutine exercise of the public operations. It
// asserts two things no single-threaded test can: that hand-over-hand
// locking never deadlocks under contention (the test itself hangs and
// is killed by `go test`'s timeout if it does), and that the tree's
// invariants — every reachable id resolves to a live node, no name
// resolves to two different ids — hold after the dust settles.

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestConcurrentOperationsDoNotDeadlock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InodeTableSize = 256
	cfg.MaxDirEntries = 16
	tr := New(cfg)

	const dirs = 8
	for i := 0; i < dirs; i++ {
		if st := tr.Create(fmt.Sprintf("/d%d", i), KindDirectory); st != Success {
			t.Fatalf("setup Create(/d%d) = %v", i, st)
		}
	}

	wg, ctx := errgroup.WithContext(context.Background())
	const workers = 16
	const opsPerWorker = 200

	for w := 0; w < workers; w++ {
		w := w
		wg.Go(func() error {
			rnd := rand.New(rand.NewSource(int64(w) + 1))
			for i := 0; i < opsPerWorker; i++ {
				select {
				case <-ctx.Done():
					return nil
				default:
				}

				srcDir := rnd.Intn(dirs)
				dstDir := rnd.Intn(dirs)
				name := fmt.Sprintf("f%d", rnd.Intn(32))

				switch rnd.Intn(5) {
				case 0:
					tr.Create(fmt.Sprintf("/d%d/%s", srcDir, name), KindFile)
				case 1:
					tr.Delete(fmt.Sprintf("/d%d/%s", srcDir, name))
				case 2:
					tr.Lookup(fmt.Sprintf("/d%d/%s", srcDir, name))
				case 3:
					tr.Move(fmt.Sprintf("/d%d/%s", srcDir, name), fmt.Sprintf("/d%d/%s", dstDir, name))
				case 4:
					tr.Lookup(fmt.Sprintf("/d%d", srcDir))
				}
			}
			return nil
		})
	}

	if err := wg.Wait(); err != nil {
		t.Fatalf("concurrent workers returned an error: %v", err)
	}

	assertNoDuplicateNames(t, tr)
}

// assertNoDuplicateNames walks the whole table and confirms every live
// directory's entries name at most one id each and every named id
// actually points at a live node — the invariant the locking protocol
// exists to protect.
func assertNoDuplicateNames(t *testing.T, tr *Tree) {
	t.Helper()
	for id := range tr.table.nodes {
		n := &tr.table.nodes[id]
		n.mu.RLock()
		if n.kind != KindDirectory {
			n.mu.RUnlock()
			continue
		}
		seen := make(map[string]int)
		for _, e := range n.entries {
			if e.id == FreeID {
				continue
			}
			if other, dup := seen[e.name]; dup {
				t.Errorf("directory %d has duplicate name %q pointing at both %d and %d", id, e.name, other, e.id)
			}
			seen[e.name] = e.id
			child := &tr.table.nodes[e.id]
			child.mu.RLock()
			if child.kind == KindNone {
				t.Errorf("directory %d entry %q points at free slot %d", id, e.name, e.id)
			}
			child.mu.RUnlock()
		}
		n.mu.RUnlock()
	}
}

func TestConcurrentCreateSameNameExactlyOneWins(t *testing.T) {
	tr := New(DefaultConfig())
	tr.Create("/d", KindDirectory)

	const n = 32
	wg, _ := errgroup.WithContext(context.Background())
	results := make([]Status, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Go(func() error {
			results[i] = tr.Create("/d/contested", KindFile)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		t.Fatal(err)
	}

	successes := 0
	for _, st := range results {
		if st == Success {
			successes++
		} else if st != FileAlreadyExists {
			t.Fatalf("unexpected status racing Create: %v", st)
		}
	}
	if successes != 1 {
		t.Fatalf("got %d successful creates of the same name, want exactly 1", successes)
	}
}
