package path

import "testing"

func TestNewCollapsesSlashes(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"a/b", []string{"a", "b"}},
		{"/a//b/", []string{"a", "b"}},
		{"//a/b//c//", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		got := New(tc.raw).Segments()
		if len(got) != len(tc.want) {
			t.Fatalf("New(%q) = %v, want %v", tc.raw, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("New(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		}
	}
}

func TestStringRoundTrips(t *testing.T) {
	if got := New("/a/b/c").String(); got != "/a/b/c" {
		t.Fatalf("String() = %q, want /a/b/c", got)
	}
	if got := New("/").String(); got != "/" {
		t.Fatalf("String() = %q, want /", got)
	}
}

func TestEqual(t *testing.T) {
	if !New("/a/b").Equal(New("a//b/")) {
		t.Fatal("expected equal paths")
	}
	if New("/a/b").Equal(New("/a/c")) {
		t.Fatal("expected unequal paths")
	}
}

func TestFromSegmentsCopies(t *testing.T) {
	segs := []string{"a", "b"}
	p := FromSegments(segs)
	segs[0] = "mutated"
	if p.Segments()[0] != "a" {
		t.Fatal("FromSegments must copy its input")
	}
}

func TestEmpty(t *testing.T) {
	if !New("/").Empty() {
		t.Fatal("root path should be empty")
	}
	if New("/a").Empty() {
		t.Fatal("non-root path should not be empty")
	}
}
