package tile

import (
	"testing"

	"github.com/lixenwraith/graphcrawl/direction"
)

func TestLinkIsReciprocal(t *testing.T) {
	a := New()
	b := New()

	a.Link(b, direction.East)

	if a.Links[direction.East].Target != b {
		t.Fatal("a's East link does not point at b")
	}
	if b.Links[direction.West].Target != a {
		t.Fatal("b's West link does not point back at a")
	}
	if a.Links[direction.East].IncomingDir != direction.West {
		t.Fatalf("got incoming dir %v, want West", a.Links[direction.East].IncomingDir)
	}
}

func TestLinkWithExplicitInDir(t *testing.T) {
	a := New()
	b := New()

	// Non-Euclidean: leaving East can arrive from North on the far side.
	a.Link(b, direction.East, direction.North)

	if b.Links[direction.North].Target != a {
		t.Fatal("b's North link does not point back at a")
	}
	if a.Links[direction.East].IncomingDir != direction.North {
		t.Fatalf("got incoming dir %v, want North", a.Links[direction.East].IncomingDir)
	}
}

func TestLinkFatalOnOccupiedSlot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when linking into an occupied slot")
		}
	}()

	a, b, c := New(), New(), New()
	a.Link(b, direction.East)
	a.Link(c, direction.East) // a's East slot is already taken
}

func TestInsertSplicesIntoLiveEdge(t *testing.T) {
	a := New()
	b := New()
	a.Link(b, direction.East)

	mid := New()
	a.Insert(mid, direction.East)

	if a.Links[direction.East].Target != mid {
		t.Fatal("a's East link should now point at mid")
	}
	if mid.Links[direction.East].Target != b {
		t.Fatal("mid's East link should point at b")
	}
	if mid.Links[direction.West].Target != a {
		t.Fatal("mid's West link should point back at a")
	}
	if b.Links[direction.West].Target != mid {
		t.Fatal("b's West link should now point at mid, not a")
	}
}

func TestInsertFatalWithoutExistingEdge(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when inserting into a nonexistent edge")
		}
	}()

	a := New()
	mid := New()
	a.Insert(mid, direction.East)
}

func TestInsertFatalWhenNewTileAlreadyLinked(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when new tile's slots are already occupied")
		}
	}()

	a, b := New(), New()
	a.Link(b, direction.East)

	mid, other := New(), New()
	mid.Link(other, direction.East) // occupies mid's East slot ahead of time

	a.Insert(mid, direction.East)
}

func TestNeighborAndNeighborRelative(t *testing.T) {
	a, b := New(), New()
	a.Link(b, direction.East)

	if b.Neighbor(direction.West).Target != a {
		t.Fatal("Neighbor(West) from b should reach a")
	}

	c := New()
	b.Link(c, direction.North)

	// Arriving at b from West (i.e. from a); turning +2 relative is a
	// reversal, landing back on West per direction.Relative's table.
	got := b.NeighborRelative(direction.West, 2)
	want := b.Links[direction.Relative(direction.West, 2)]
	if got.Target != want.Target {
		t.Fatalf("NeighborRelative mismatch: got %v want %v", got, want)
	}
}

func TestListLinksHighlightsIndex(t *testing.T) {
	a, b := New(), New()
	a.Link(b, direction.East)

	s := a.ListLinks(int(direction.East))
	if s == "" {
		t.Fatal("ListLinks returned empty string")
	}
}
