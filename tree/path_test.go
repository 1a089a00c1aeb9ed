package tree

import "testing"

func TestSplit(t *testing.T) {
	cases := []struct {
		path       string
		wantParent string
		wantChild  string
		wantDepth  int
	}{
		{"a", "", "a", 0},
		{"a/b", "a", "b", 1},
		{"a/b/c", "a/b", "c", 2},
		{"a/b/", "a", "b", 1},
		{"", "", "", 0},
	}
	for _, c := range cases {
		parent, child, depth := Split(c.path)
		if parent != c.wantParent || child != c.wantChild || depth != c.wantDepth {
			t.Errorf("Split(%q) = (%q, %q, %d), want (%q, %q, %d)",
				c.path, parent, child, depth, c.wantParent, c.wantChild, c.wantDepth)
		}
	}
}

func TestComponents(t *testing.T) {
	cases := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a/b/c", []string{"a", "b", "c"}},
		{"a/b/", []string{"a", "b"}},
	}
	for _, c := range cases {
		got := components(c.path)
		if len(got) != len(c.want) {
			t.Fatalf("components(%q) = %v, want %v", c.path, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("components(%q) = %v, want %v", c.path, got, c.want)
			}
		}
	}
}

func TestTrimLeadingSlash(t *testing.T) {
	cases := map[string]string{
		"/a/b": "a/b",
		"a/b":  "a/b",
		"/":    "",
		"":     "",
	}
	for in, want := range cases {
		if got := trimLeadingSlash(in); got != want {
			t.Errorf("trimLeadingSlash(%q) = %q, want %q", in, got, want)
		}
	}
}
