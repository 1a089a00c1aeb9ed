package syncwrap

import (
	"strings"
	"testing"

	"github.com/lockfs/lockfs/tree"
)

func TestParseStrategy(t *testing.T) {
	cases := map[string]Strategy{
		"m": StrategyMutex, "mutex": StrategyMutex,
		"r": StrategyRWMutex, "rwlock": StrategyRWMutex,
		"n": StrategyNone, "nosync": StrategyNone, "none": StrategyNone,
	}
	for in, want := range cases {
		got, ok := ParseStrategy(in)
		if !ok || got != want {
			t.Errorf("ParseStrategy(%q) = (%v, %v), want (%v, true)", in, got, ok, want)
		}
	}
	if _, ok := ParseStrategy("bogus"); ok {
		t.Error("ParseStrategy(bogus) should fail")
	}
}

func testAllStrategies(t *testing.T, run func(t *testing.T, tr *Tree)) {
	for _, strat := range []Strategy{StrategyNone, StrategyMutex, StrategyRWMutex} {
		strat := strat
		t.Run(strat.String(), func(t *testing.T) {
			tr := Wrap(tree.New(tree.DefaultConfig()), strat)
			run(t, tr)
		})
	}
}

func TestWrappedOperationsDelegateToInner(t *testing.T) {
	testAllStrategies(t, func(t *testing.T, tr *Tree) {
		if st := tr.Create("/a", tree.KindDirectory); st != tree.Success {
			t.Fatalf("Create(/a) = %v", st)
		}
		if st := tr.Create("/a/b", tree.KindFile); st != tree.Success {
			t.Fatalf("Create(/a/b) = %v", st)
		}
		if _, st := tr.Lookup("/a/b"); st != tree.Success {
			t.Fatalf("Lookup(/a/b) = %v", st)
		}
		if st := tr.Move("/a/b", "/a/c"); st != tree.Success {
			t.Fatalf("Move(/a/b, /a/c) = %v", st)
		}

		var sb strings.Builder
		tr.Print(&sb)
		if !strings.Contains(sb.String(), "/a/c") {
			t.Fatalf("Print output missing /a/c: %q", sb.String())
		}

		if st := tr.Delete("/a/c"); st != tree.Success {
			t.Fatalf("Delete(/a/c) = %v", st)
		}
		tr.Destroy()
	})
}

func TestStrategyReturnsWhatItWasBuiltWith(t *testing.T) {
	tr := Wrap(tree.New(tree.DefaultConfig()), StrategyRWMutex)
	if tr.Strategy() != StrategyRWMutex {
		t.Fatalf("Strategy() = %v, want StrategyRWMutex", tr.Strategy())
	}
}
