// Package raycast walks a straight Cartesian ray through the tile graph,
// translating each integer 2-D step into a relative graph traversal and
// invoking callbacks as it goes. Grounded in
// original_source/Wincrawl2/raytracer.{hpp,cpp} and restated per
// spec.md §4.E.
package raycast

import (
	"github.com/lixenwraith/graphcrawl/direction"
	"github.com/lixenwraith/graphcrawl/internal/diag"
	"github.com/lixenwraith/graphcrawl/tile"
)

// Walker carries "the tile currently under the ray, and which direction
// index in that tile the ray most recently entered from," plus enough
// state to translate the next absolute 2-D step into a turn angle.
type Walker struct {
	loc  *tile.Tile
	dir  direction.Dir
	rot  int
	x, y int
	last int // last absolute direction index, or -1 before the first step
}

// absolute direction indices for a Cartesian delta, per spec.md §4.E
// step 3: +y->0, +x->1, -y->2, -x->3.
const (
	absNorth = 0
	absEast  = 1
	absSouth = 2
	absWest  = 3
)

// Reset seats the walker at its source tile and integer origin, ready
// for a new trace. rot is the view's current rotation, consulted only
// on the very first step of the trace that follows.
func Reset(origin *tile.Tile, rot int, startX, startY int) *Walker {
	return &Walker{loc: origin, rot: rot, x: startX, y: startY, last: -1}
}

// Loc returns the tile currently under the ray.
func (w *Walker) Loc() *tile.Tile {
	return w.loc
}

// Step requests an absolute 2-D move to (x,y), a single axial unit away
// from the walker's current position. It reports whether the move
// landed on a present, non-opaque tile (false stops the trace: either
// the target link was absent, or the tile it reached is opaque).
func (w *Walker) Step(x, y int) bool {
	dx := x - w.x
	dy := y - w.y
	if dx == 0 && dy == 0 {
		return true
	}
	if abs(dx)+abs(dy) != 1 {
		diag.Fatal("raycast: walker step is not a single axial unit", "dx", dx, "dy", dy)
	}

	dAbs := absoluteDirection(dx, dy)

	var link tile.Link
	if w.last == -1 {
		link = w.loc.Links[direction.Dir((dAbs+w.rot)%4)]
	} else {
		link = w.loc.NeighborRelative(w.dir, dAbs-w.last)
	}

	w.x, w.y = x, y

	if !link.Present() {
		return false
	}

	w.loc = link.Target
	w.dir = link.IncomingDir
	w.last = dAbs

	return !w.loc.IsOpaque
}

func absoluteDirection(dx, dy int) int {
	switch {
	case dy > 0:
		return absNorth
	case dx > 0:
		return absEast
	case dy < 0:
		return absSouth
	default:
		return absWest
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// TileFunc is invoked with the walker's current tile and the integer
// grid position that produced it.
type TileFunc func(loc *tile.Tile, x, y int)

// Trace walks from (sx,sy) to (dx,dy) in view-local Cartesian
// coordinates, stepping the ray Manhattan-style (one axis at a time)
// across S := max(|sx-dx|,|sy-dy|)+1 integer stops. onEachTile fires
// for every tile reached by a successful step. If any sub-step fails
// (an absent link, or landing on an opaque tile), onLastTile fires
// with the last tile reached and the trace stops; otherwise,
// onTargetTile fires once the full trace completes.
func Trace(origin *tile.Tile, rot int, sx, sy, dx, dy int, onEachTile, onLastTile, onTargetTile TileFunc) {
	w := Reset(origin, rot, sx, sy)

	steps := max(absInt(sx-dx), absInt(sy-dy)) + 1

	lastX, lastY := sx, sy
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		xi := sx + roundToInt(float64(dx-sx)*frac)
		yi := sy + roundToInt(float64(dy-sy)*frac)

		if !stepAxis(w, lastX, yi, onEachTile) {
			onLastTile(w.Loc(), lastX, yi)
			return
		}
		lastY = yi

		if !stepAxis(w, xi, lastY, onEachTile) {
			onLastTile(w.Loc(), xi, lastY)
			return
		}
		lastX = xi
	}

	onTargetTile(w.Loc(), lastX, lastY)
}

// stepAxis steps the walker to (x,y) (a no-op if it's already there)
// and, on success, invokes onEachTile.
func stepAxis(w *Walker, x, y int, onEachTile TileFunc) bool {
	ok := w.Step(x, y)
	if ok {
		onEachTile(w.Loc(), x, y)
	}
	return ok
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func roundToInt(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}
