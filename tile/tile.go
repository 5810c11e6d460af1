// Package tile implements the non-Euclidean world graph: tiles linked
// along six directional edges, with splice/insert operations that preserve
// the reciprocal-link invariant every other package in this module relies
// on. Grounded in original_source/Wincrawl2/places.{hpp,cpp} (Tile::link,
// Tile::insert, Tile::getNextTile) and restated in Go idiom per spec.md §4.B.
package tile

import (
	"fmt"

	"github.com/lixenwraith/graphcrawl/color"
	"github.com/lixenwraith/graphcrawl/direction"
	"github.com/lixenwraith/graphcrawl/entity"
	"github.com/lixenwraith/graphcrawl/internal/diag"
	"github.com/rivo/uniseg"
)

// Room ID sentinels (spec.md §3: roomId semantics).
const (
	RoomUninit  uint16 = 0
	RoomHidden  uint16 = 1 // placeholder for never-traced cells
	RoomEmpty   uint16 = 2 // placeholder for a traced-but-absent link
	RoomHallway uint16 = 9
	RoomFirst   uint16 = 10 // real rooms start numbering here
)

// Link is one directed edge of a tile: a target tile, and the direction
// index in the target's own Links array that points back to this side.
type Link struct {
	Target      *Tile
	IncomingDir direction.Dir
}

// Present reports whether the link has a target.
func (l Link) Present() bool {
	return l.Target != nil
}

// Tile is one cell of the world graph.
type Tile struct {
	id uint32

	Links  [6]Link
	RoomID uint16

	// Glyph is one UTF-8 grapheme cluster, e.g. "." or "🙂". Its byte
	// length is not limited.
	Glyph string

	IsOpaque bool
	BgColor  color.RGBA
	FgColor  color.RGBA

	Occupants []*entity.Entity
}

var nextTileID uint32

// New creates an unlinked tile with no room assignment. Tiles are only
// ever meant to be created by a Plane (see the plane package); this
// constructor is exported so the plane and raycast packages can both
// build on it.
func New() *Tile {
	id := nextTileID
	nextTileID++
	return &Tile{id: id, RoomID: RoomUninit}
}

// ID returns the tile's stable, monotonically assigned debug identifier.
// It carries no game semantics.
func (t *Tile) ID() uint32 {
	return t.id
}

// String renders a zero-padded debug identifier, e.g. "tile#0007".
func (t *Tile) String() string {
	return fmt.Sprintf("tile#%04d", t.id)
}

// SetGlyph assigns the tile's displayed glyph, enforcing that it is
// exactly one grapheme cluster, so a combining sequence or emoji ZWJ
// cluster can't silently span two logical cells. The glyph's byte length
// is not checked: a multi-rune cluster longer than 4 bytes is accepted.
func (t *Tile) SetGlyph(glyph string) {
	if n := uniseg.GraphemeClusterCount(glyph); n != 1 {
		diag.Fatal("tile: glyph must be exactly one grapheme cluster",
			"glyph", glyph, "clusters", n)
	}
	t.Glyph = glyph
}

// Link connects self and other along a pair of reciprocal edges: self's
// outDir link points to other, and other's inDir link points back to
// self. If inDir is omitted it defaults to direction.Opposite(outDir).
//
// Both targeted slots must be empty; Link fatally aborts the program
// otherwise, since a one-way link is always a programmer error (see
// spec.md §7).
func (t *Tile) Link(other *Tile, outDir direction.Dir, inDir ...direction.Dir) {
	in := resolveIn(outDir, inDir)

	if t.Links[outDir].Present() || other.Links[in].Present() {
		diag.Fatal("tile: link would overwrite an occupied slot",
			"self", t.String(), "outDir", outDir, "selfLinks", t.ListLinks(int(outDir)),
			"other", other.String(), "inDir", in, "otherLinks", other.ListLinks(int(in)))
	}

	t.Links[outDir] = Link{Target: other, IncomingDir: in}
	other.Links[in] = Link{Target: t, IncomingDir: outDir}
}

// Insert splices newTile into the existing edge self.Links[outDir] -> dest,
// producing self <-> newTile <-> dest. newTile's outDir link is set to
// point at dest (carrying dest's old incoming direction), and its inDir
// link is set to point back at self (carrying self's old outgoing
// direction). If inDir is omitted it defaults to direction.Opposite(outDir).
//
// Requires self.Links[outDir] to be present and both newTile.Links[inDir]
// and newTile.Links[Opposite(inDir)] to be empty; violations are fatal.
func (t *Tile) Insert(newTile *Tile, outDir direction.Dir, inDir ...direction.Dir) {
	in := resolveIn(outDir, inDir)

	outbound := t.Links[outDir]
	if !outbound.Present() {
		diag.Fatal("tile: insert requires an existing edge",
			"self", t.String(), "outDir", outDir)
	}
	if newTile.Links[in].Present() || newTile.Links[direction.Opposite(in)].Present() {
		diag.Fatal("tile: insert requires the new tile's two edges to be empty",
			"newTile", newTile.String(), "inDir", in, "newTileLinks", newTile.ListLinks(int(in)))
	}

	dest := outbound.Target
	inbound := dest.Links[outbound.IncomingDir]

	newTile.Links[outDir] = outbound
	newTile.Links[in] = inbound

	t.Links[outDir] = Link{Target: newTile, IncomingDir: in}
	dest.Links[outbound.IncomingDir] = Link{Target: newTile, IncomingDir: outDir}
}

func resolveIn(outDir direction.Dir, inDir []direction.Dir) direction.Dir {
	if len(inDir) > 0 {
		return inDir[0]
	}
	return direction.Opposite(outDir)
}

// Neighbor returns the link for the direction the walker arrived from —
// an identity alias for Links[cameFromDir].
func (t *Tile) Neighbor(cameFromDir direction.Dir) Link {
	return t.Links[cameFromDir]
}

// NeighborRelative returns the link reached by applying relativeTurn (in
// [-3,3]) to cameFromDir, per direction.Relative.
func (t *Tile) NeighborRelative(cameFromDir direction.Dir, relativeTurn int) Link {
	return t.Links[direction.Relative(cameFromDir, relativeTurn)]
}

// ListLinks renders each of the six links as present ("→id") or absent
// ("·"), with highlight (or -1 for none) marked. Used by diagnostics when
// reporting a reciprocity violation.
func (t *Tile) ListLinks(highlight int) string {
	out := t.String() + ":"
	for i := 0; i < 6; i++ {
		mark := " "
		if i == highlight {
			mark = "*"
		}
		if t.Links[i].Present() {
			out += fmt.Sprintf(" %d%s→%s", i, mark, t.Links[i].Target.String())
		} else {
			out += fmt.Sprintf(" %d%s·", i, mark)
		}
	}
	return out
}
