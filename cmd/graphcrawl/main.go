// Command graphcrawl is a minimal demonstration binary for the
// non-Euclidean tile graph, map generator, and view renderer: it builds
// a Plane, seats a View on its starting tile, and prints a sequence of
// rendered frames to stdout using ANSI truecolor escapes. Terminal
// setup, keystroke decoding, and the input loop are out of scope for
// the core (see SPEC_FULL.md) and are not reproduced here beyond this
// flag-driven walk-and-render demo.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lixenwraith/graphcrawl/plane"
	"github.com/lixenwraith/graphcrawl/view"
	runewidth "github.com/mattn/go-runewidth"
)

var (
	seed   int64
	rooms  int
	width  int
	height int
	steps  int
)

func init() {
	flag.Int64Var(&seed, "seed", 6, "pseudorandom seed for map generation")
	flag.IntVar(&rooms, "rooms", 12, "number of rooms to generate")
	flag.IntVar(&width, "width", 41, "view width in cells")
	flag.IntVar(&height, "height", 21, "view height in cells")
	flag.IntVar(&steps, "steps", 4, "number of move+render steps to walk through")
}

func main() {
	flag.Parse()

	if width < 1 || height < 1 {
		fmt.Fprintln(os.Stderr, "graphcrawl: width and height must be >= 1")
		os.Exit(1)
	}

	slog.Info("generating plane", "seed", seed, "rooms", rooms)
	p := plane.New(seed, rooms)

	cam := view.New(p.StartingTile())
	grid := newGrid(width, height)

	printFrame(cam, grid, 0)

	for i := 1; i <= steps; i++ {
		cam.Move(i % 4)
		printFrame(cam, grid, i)
	}
}

func newGrid(w, h int) view.Grid {
	g := make(view.Grid, w)
	for x := range g {
		g[x] = make([]view.Cell, h)
	}
	return g
}

func printFrame(cam *view.View, grid view.Grid, step int) {
	cam.Render(grid)

	w, h := len(grid), len(grid[0])

	var b strings.Builder
	fmt.Fprintf(&b, "-- step %d (rot=%d) --\n", step, cam.Rot())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := grid[x][y]
			b.WriteString(c.Background.Background())
			b.WriteString(c.Foreground.Foreground())
			b.WriteString(c.Glyph)
			// A zero-width glyph (a bare combining mark, still one
			// grapheme cluster per tile.SetGlyph) would otherwise
			// visually vanish into the next cell; pad it out to a
			// full column.
			if runewidth.StringWidth(c.Glyph) < 1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\x1b[0m\n")
	}

	fmt.Print(b.String())
}
