// Package view implements the stateful camera: a (tile, rotation) pair
// that projects a rectangular grid of glyph/color cells by fanning rays
// through the raycast package, and that moves and turns while
// preserving the viewer's local rotation frame across a possibly
// twisted edge. Grounded in original_source/Wincrawl2/view.cpp and
// restated per spec.md §4.F.
package view

import (
	"github.com/lixenwraith/graphcrawl/color"
	"github.com/lixenwraith/graphcrawl/direction"
	"github.com/lixenwraith/graphcrawl/entity"
	"github.com/lixenwraith/graphcrawl/internal/diag"
	"github.com/lixenwraith/graphcrawl/raycast"
	"github.com/lixenwraith/graphcrawl/tile"
)

// Cell is one rendered grid cell: the original spec's (character,
// foreground, background, attributes) tuple. Attributes are left to an
// external screen compositor and are not modeled here.
type Cell struct {
	Glyph      string
	Foreground color.RGBA
	Background color.RGBA
}

// Grid is a target frame buffer, indexed [x][y], that Render writes
// into. Callers own its allocation; Render only ever writes within its
// existing bounds.
type Grid [][]Cell

// View is a camera: a tile and a rotation (0..3), plus an internal
// scratch grid the raycaster's per-tile callback populates during
// render.
type View struct {
	loc *tile.Tile
	rot int

	scratch [][]*tile.Tile
}

// New seats a view on loc with rotation 0.
func New(loc *tile.Tile) *View {
	return &View{loc: loc, rot: 0}
}

// Loc returns the view's current tile.
func (v *View) Loc() *tile.Tile {
	return v.loc
}

// Rot returns the view's current rotation in [0,3].
func (v *View) Rot() int {
	return v.rot
}

// subPixelOffsets are added to each boundary ray's destination along
// its traversal axis, four passes per render to reduce aliasing in the
// non-Euclidean projection. Order matters: later passes' writes to a
// shared scratch cell win, per spec.md §5's ordering guarantee.
var subPixelOffsets = [4]float64{0.25, 0.75, 0.5, 0.0}

// Render resizes the view's internal scratchpad to target's dimensions,
// fills every cell with the hidden-tile placeholder, fans rays from the
// center to the target's boundary (four sub-pixel passes plus a final
// corner ray), sets the center cell to loc explicitly (it is never
// traced), and composes every populated scratch cell into target.
func (v *View) Render(target Grid) {
	if v.loc == nil {
		diag.Fatal("view: render called with no loc")
	}

	w := len(target)
	if w == 0 {
		return
	}
	h := len(target[0])
	if h == 0 {
		return
	}

	v.resizeScratch(w, h)

	cx, cy := (w-1)/2, (h-1)/2

	for _, offset := range subPixelOffsets {
		v.fanToBoundary(cx, cy, w, h, offset)
	}
	v.traceTo(cx, cy, w-1, h-1)

	v.scratch[cx][cy] = v.loc

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			target[x][y] = v.composeCell(v.scratch[x][y])
		}
	}
}

func (v *View) resizeScratch(w, h int) {
	if len(v.scratch) == w && (w == 0 || len(v.scratch[0]) == h) {
		for x := range v.scratch {
			for y := range v.scratch[x] {
				v.scratch[x][y] = nil
			}
		}
		return
	}
	v.scratch = make([][]*tile.Tile, w)
	for x := range v.scratch {
		v.scratch[x] = make([]*tile.Tile, h)
	}
}

// fanToBoundary casts a ray from the center to every cell on the target
// rectangle's perimeter, each destination nudged by offset along its
// traversal axis.
func (v *View) fanToBoundary(cx, cy, w, h int, offset float64) {
	for x := 0; x < w; x++ {
		v.traceToOffset(cx, cy, x, 0, offset, true)
		v.traceToOffset(cx, cy, x, h-1, offset, true)
	}
	for y := 0; y < h; y++ {
		v.traceToOffset(cx, cy, 0, y, offset, false)
		v.traceToOffset(cx, cy, w-1, y, offset, false)
	}
}

// traceToOffset traces from the center to (dx,dy), adding offset to the
// destination along the boundary edge's axis (x when alongX, else y)
// before rounding, then records every tile the ray crosses into the
// scratch grid.
func (v *View) traceToOffset(cx, cy, dx, dy int, offset float64, alongX bool) {
	fx, fy := float64(dx), float64(dy)
	if alongX {
		fx += offset
	} else {
		fy += offset
	}

	onEach := func(loc *tile.Tile, x, y int) { v.markScratch(x, y, loc) }
	onLast := func(loc *tile.Tile, x, y int) { v.markScratch(x, y, loc) }
	onTarget := func(loc *tile.Tile, x, y int) { v.markScratch(x, y, loc) }

	raycast.Trace(v.loc, v.rot, cx, cy, roundToInt(fx), roundToInt(fy), onEach, onLast, onTarget)
}

func (v *View) traceTo(cx, cy, dx, dy int) {
	onEach := func(loc *tile.Tile, x, y int) { v.markScratch(x, y, loc) }
	raycast.Trace(v.loc, v.rot, cx, cy, dx, dy, onEach, onEach, onEach)
}

func (v *View) markScratch(x, y int, loc *tile.Tile) {
	if x < 0 || x >= len(v.scratch) {
		return
	}
	if y < 0 || y >= len(v.scratch[x]) {
		return
	}
	v.scratch[x][y] = loc
}

// hiddenGlyph/hiddenColor are used for scratch cells the fan never
// reached.
const hiddenGlyph = " "

var hiddenColor = color.RGBA{}

func (v *View) composeCell(t *tile.Tile) Cell {
	if t == nil {
		return Cell{Glyph: hiddenGlyph, Foreground: hiddenColor, Background: hiddenColor}
	}

	cell := Cell{Glyph: t.Glyph, Foreground: t.FgColor, Background: t.BgColor}

	for _, occ := range t.Occupants {
		evt := &entity.GetRendered{}
		occ.Dispatch(evt)
		if evt.Glyph != "" {
			cell.Glyph = evt.Glyph
			cell.Foreground = evt.FgColor
			break
		}
	}

	return cell
}

// Move attempts to step the camera one edge in an absolute-to-view
// direction in [0,3]. The new rotation preserves the viewer's relative
// "forward" across the (possibly twisted) edge just crossed. A no-op
// if the edge has no link.
func (v *View) Move(dir int) {
	eAbs := direction.Dir((dir + v.rot) % 4)
	link := v.loc.Links[eAbs]
	if !link.Present() {
		return
	}

	old := v.loc
	v.rot = (v.rot + int(direction.Opposite(link.IncomingDir)) - int(eAbs) + 4) % 4
	v.loc = link.Target

	dragOccupant(old, v.loc)
}

// dragOccupant carries an occupant across a move: it pops the last
// occupant off the tile being left and pushes it onto the tile being
// entered. The original source's two prototypes of this behavior both
// acted on whichever entity happened to be last in the list rather
// than a specific player reference; spec.md §9 flags this as an open
// question, declares it intentional for now, and marks it for
// replacement with an explicit player-entity handle (see DESIGN.md).
func dragOccupant(from, to *tile.Tile) {
	n := len(from.Occupants)
	if n == 0 {
		return
	}
	occ := from.Occupants[n-1]
	from.Occupants = from.Occupants[:n-1]
	to.Occupants = append(to.Occupants, occ)
}

// Turn rotates the camera in place by delta (typically ±1).
func (v *View) Turn(delta int) {
	v.rot = (v.rot + delta + 4) % 4
}

func roundToInt(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}
