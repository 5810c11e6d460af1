// Package plane implements procedural map generation: square, cylindrical,
// and conical rooms, hallways in five turn styles, and the door-pairing
// assembly algorithm that stitches a requested number of rooms into one
// tile graph. Grounded in original_source/Wincrawl2/places.{hpp,cpp}
// (Plane, Plane::genSquareRoom) and restated per spec.md §4.D, which
// expands the prototype's single fixed two-room demo into a general
// N-room generator with cylindrical/conical rooms and four hallway
// styles beyond the straight corridor the original shipped.
package plane

import (
	"fmt"

	"github.com/lixenwraith/graphcrawl/color"
	"github.com/lixenwraith/graphcrawl/direction"
	"github.com/lixenwraith/graphcrawl/entity"
	"github.com/lixenwraith/graphcrawl/internal/diag"
	"github.com/lixenwraith/graphcrawl/prng"
	"github.com/lixenwraith/graphcrawl/tile"
)

// RoomConnection is an advertised, unplugged edge of a room: a tile and
// the direction index whose link is still absent.
type RoomConnection struct {
	Tile *tile.Tile
	Dir  direction.Dir
}

// Room is one unit of generated geometry: a seed (interior centroid)
// tile, plus the connections still available for splicing into
// hallways. Hallways themselves are built as Rooms internally (to reuse
// the same Connections bookkeeping) but are never added to a Plane's
// Rooms list.
type Room struct {
	Seed        *tile.Tile
	Connections []RoomConnection
}

// HallwayStyle selects the turn pattern genHallway applies between
// consecutive tiles along its length.
type HallwayStyle int

const (
	Straight HallwayStyle = iota
	ZigZag
	SpiralCW
	SpiralCCW
	Irregular
)

// Door bit layout, CSS-style (top/right/bottom/left), shared by
// genSquareRoom and genConicalRoom's doorMask parameter.
const (
	DoorTop    uint8 = 0b0001
	DoorRight  uint8 = 0b0010
	DoorBottom uint8 = 0b0100
	DoorLeft   uint8 = 0b1000
	DoorAll    uint8 = 0b1111
)

// Plane owns every Tile and Entity created during map generation. Tiles
// reference each other only through weak Links (see tile.Link); nothing
// outlives the Plane that created it.
type Plane struct {
	id  uint32
	rng *prng.Source

	Tiles    []*tile.Tile
	Entities []*entity.Entity
	Rooms    []*Room
}

var nextPlaneID uint32

// New builds a complete Plane from a seed and a target room count:
// numRooms rooms, chained by hallway splices, plus ⌈numRooms/4⌉ extra
// interlinks (none when numRooms is 1, so a single room keeps all its
// connections), all driven by a single rng in strict program order so
// that (seed, numRooms) reproduces the same tile graph up to tile ID
// renumbering.
func New(seed int64, numRooms int) *Plane {
	if numRooms < 1 {
		diag.Fatal("plane: numRooms must be >= 1", "numRooms", numRooms)
	}

	p := &Plane{id: nextPlaneID, rng: prng.New(seed)}
	nextPlaneID++

	for i := 0; i < numRooms; i++ {
		p.genRandomRoom()
	}
	mustAllConnectionsFree(p.Rooms)

	for i := 1; i < numRooms; i++ {
		p.connectChain(p.Rooms[i-1], p.Rooms[i])
	}
	mustAllConnectionsFree(p.Rooms)

	extra := (numRooms + 3) / 4
	if numRooms == 1 {
		extra = 0
	}
	p.interlink(extra)
	mustAllConnectionsFree(p.Rooms)

	p.spawnAvatar()

	return p
}

// String renders a zero-padded debug identifier, e.g. "plane#0001".
func (p *Plane) String() string {
	return fmt.Sprintf("plane#%04d", p.id)
}

// StartingTile returns the seed of the first generated room, the
// conventional place to seat a fresh View.
func (p *Plane) StartingTile() *tile.Tile {
	return p.Rooms[0].Seed
}

func (p *Plane) newTile() *tile.Tile {
	t := tile.New()
	p.Tiles = append(p.Tiles, t)
	return t
}

func (p *Plane) nextRoomID() uint16 {
	return tile.RoomFirst + uint16(len(p.Rooms))
}

// genRandomRoom builds one room of random shape, size, and color and
// appends it to the Plane's room list, per the per-room step of the
// assembly algorithm: roughly 1/3 conical, otherwise a square/cylinder
// room with side lengths in [2,8] and a 1/4 chance of x-wrapping.
func (p *Plane) genRandomRoom() {
	fg := color.FromHSLuv(p.rng.FloatRange(0, 360), p.rng.FloatRange(40, 90), p.rng.FloatRange(35, 65))
	bg := color.FromHSLuv(p.rng.FloatRange(0, 360), p.rng.FloatRange(10, 30), p.rng.FloatRange(5, 15))

	var room *Room
	if p.rng.Bool(3) {
		room = p.genConicalRoom(p.rng.IntRange(2, 6), fg, bg, DoorAll)
	} else {
		w := p.rng.IntRange(2, 9)
		h := p.rng.IntRange(2, 9)
		wrapX := p.rng.Bool(4)
		room = p.genSquareRoom(w, h, wrapX, false, fg, bg, DoorAll)
	}

	prng.Shuffle(p.rng, room.Connections)
}

// buildGrid creates a w (x) by h (y) grid of freshly registered tiles,
// linking them orthogonally along East and South, and stamps every
// cell with roomID, fg, bg and an alternating floor glyph. skip, if
// non-nil, suppresses the horizontal East/West link for any (x,y) pair
// it reports true for — used by genConicalRoom to leave its gluing row
// free of the grid's own internal linking.
func (p *Plane) buildGrid(w, h int, wrapX, wrapY bool, roomID uint16, fg, bg color.RGBA, skip func(x, y int) bool) [][]*tile.Tile {
	grid := make([][]*tile.Tile, w)
	for x := 0; x < w; x++ {
		grid[x] = make([]*tile.Tile, h)
		for y := 0; y < h; y++ {
			t := p.newTile()
			t.RoomID = roomID
			t.FgColor = fg
			t.BgColor = bg
			if (x+y)%2 == 0 {
				t.SetGlyph(".")
			} else {
				t.SetGlyph(",")
			}
			grid[x][y] = t
		}
	}

	xSpan := w
	if !wrapX {
		xSpan = w - 1
	}
	for x := 0; x < xSpan; x++ {
		for y := 0; y < h; y++ {
			if skip != nil && skip(x, y) {
				continue
			}
			grid[x][y].Link(grid[(x+1)%w][y], direction.East)
		}
	}

	ySpan := h
	if !wrapY {
		ySpan = h - 1
	}
	for x := 0; x < w; x++ {
		for y := 0; y < ySpan; y++ {
			grid[x][y].Link(grid[x][(y+1)%h], direction.South)
		}
	}

	return grid
}

// genSquareRoom builds a w*h grid of orthogonally-linked tiles. A fully
// wrapped grid (both axes) is a torus and exposes no doors. A partially
// wrapped grid is a cylinder: its two open ends each expose two doors,
// spaced at 1/3 and 2/3 of the open edge unless that edge is 3 tiles or
// narrower, in which case a single centered door is used instead. An
// unwrapped grid is a plain rectangle exposing one centered door per
// side, each gated independently by doorMask.
func (p *Plane) genSquareRoom(w, h int, wrapX, wrapY bool, fg, bg color.RGBA, doorMask uint8) *Room {
	roomID := p.nextRoomID()
	grid := p.buildGrid(w, h, wrapX, wrapY, roomID, fg, bg, nil)

	var conns []RoomConnection

	switch {
	case wrapX && wrapY:
		// torus: fully closed, no doors.
	case wrapX:
		if doorMask&DoorTop != 0 {
			conns = append(conns, edgeDoors(grid, w, 0, true, direction.North)...)
		}
		if doorMask&DoorBottom != 0 {
			conns = append(conns, edgeDoors(grid, w, h-1, true, direction.South)...)
		}
	case wrapY:
		if doorMask&DoorLeft != 0 {
			conns = append(conns, edgeDoors(grid, h, 0, false, direction.West)...)
		}
		if doorMask&DoorRight != 0 {
			conns = append(conns, edgeDoors(grid, h, w-1, false, direction.East)...)
		}
	default:
		if doorMask&DoorTop != 0 {
			conns = append(conns, RoomConnection{grid[w/2][0], direction.North})
		}
		if doorMask&DoorRight != 0 {
			conns = append(conns, RoomConnection{grid[w-1][h/2], direction.East})
		}
		if doorMask&DoorBottom != 0 {
			conns = append(conns, RoomConnection{grid[w/2][h-1], direction.South})
		}
		if doorMask&DoorLeft != 0 {
			conns = append(conns, RoomConnection{grid[0][h/2], direction.West})
		}
	}

	room := &Room{Seed: grid[w/2][h/2], Connections: conns}
	p.Rooms = append(p.Rooms, room)
	return room
}

// edgeDoors places one or two doors along a cylinder's open end. fixed
// is the constant grid coordinate of that end (a y row if alongX, an x
// column otherwise); span is the size of the axis the doors are spaced
// along.
func edgeDoors(grid [][]*tile.Tile, span, fixed int, alongX bool, dir direction.Dir) []RoomConnection {
	at := func(i int) *tile.Tile {
		if alongX {
			return grid[i][fixed]
		}
		return grid[fixed][i]
	}

	if span <= 3 {
		return []RoomConnection{{at(span / 2), dir}}
	}
	return []RoomConnection{
		{at(span / 3), dir},
		{at((2 * span) / 3), dir},
	}
}

// genConicalRoom builds an L-shape of a height*height "top" square and
// a 2*height*height "bottom" arm, glued into a cone: the top's south
// edge attaches to the bottom's first half-width (at the bottom's row
// 0), and the top's east edge attaches, in reverse order, to the
// bottom's second half-width (also at row 0). Both seams land on the
// bottom's entrance row rather than a flat shared edge, which is what
// folds the shape into a cone — walking straight through the apex from
// the top's east edge changes which way is "forward" in the bottom arm.
// Exposes up to three doors (top's north and west edges, the bottom
// arm's far south edge); the bottom arm's east edge is not exposed, to
// keep the door count at three as specified.
func (p *Plane) genConicalRoom(height int, fg, bg color.RGBA, doorMask uint8) *Room {
	h := height
	roomID := p.nextRoomID()

	top := p.buildGrid(h, h, false, false, roomID, fg, bg, nil)

	// The bottom arm's entrance row (y=0) is reserved entirely for the
	// two glue seams below; its ordinary internal East/West linking is
	// suppressed so the glue links don't collide with it.
	bottom := p.buildGrid(2*h, h, false, false, roomID, fg, bg, func(x, y int) bool {
		return y == 0
	})

	for i := 0; i < h; i++ {
		top[i][h-1].Link(bottom[i][0], direction.South)
	}
	for j := 0; j < h; j++ {
		top[h-1][h-1-j].Link(bottom[h+j][0], direction.East)
	}

	var conns []RoomConnection
	if doorMask&DoorTop != 0 {
		conns = append(conns, RoomConnection{top[h/2][0], direction.North})
	}
	if doorMask&DoorLeft != 0 {
		conns = append(conns, RoomConnection{top[0][h/2], direction.West})
	}
	if doorMask&DoorBottom != 0 {
		conns = append(conns, RoomConnection{bottom[h/2][h-1], direction.South})
	}

	room := &Room{Seed: top[h/2][h/2], Connections: conns}
	p.Rooms = append(p.Rooms, room)
	return room
}

// zigzagBases are the two base turn patterns a zig-zag hallway may pick
// from, expressed relative to a straight-ahead (East) heading.
var zigzagBases = [][]direction.Dir{
	{direction.North, direction.East},
	{direction.North, direction.East, direction.North},
}

// spiralPatternsCW are seven canonical six-step turn cycles a spiral or
// staircase hallway selects from (small/medium/large spirals and plain
// staircases), keyed by a per-hallway curveIndex. The distilled spec
// notes that two incompatible tables appear across revisions of the
// source and asks for one to be picked canonically; this is that
// choice (see DESIGN.md).
var spiralPatternsCW = [7][6]direction.Dir{
	{direction.East, direction.East, direction.South, direction.South, direction.West, direction.West},
	{direction.East, direction.South, direction.East, direction.South, direction.West, direction.North},
	{direction.East, direction.East, direction.East, direction.South, direction.South, direction.South},
	{direction.East, direction.Up, direction.East, direction.South, direction.Down, direction.South},
	{direction.East, direction.East, direction.Up, direction.South, direction.South, direction.Down},
	{direction.Up, direction.East, direction.Up, direction.South, direction.Down, direction.South},
	{direction.East, direction.South, direction.West, direction.North, direction.Up, direction.Down},
}

// hallwayParams captures the per-hallway random choices that must stay
// fixed across every step of one hallway (which zig-zag pattern, which
// spiral table row) so the whole corridor shares one consistent shape.
type hallwayParams struct {
	zigzagPattern []direction.Dir
	spiralPattern [6]direction.Dir
}

func newHallwayParams(style HallwayStyle, rng *prng.Source) hallwayParams {
	var params hallwayParams
	switch style {
	case ZigZag:
		base := zigzagBases[rng.Int(len(zigzagBases))]
		if rng.Bool(2) {
			flipped := make([]direction.Dir, len(base))
			for i, d := range base {
				flipped[i] = direction.RotateCCW(direction.RotateCCW(d))
			}
			params.zigzagPattern = flipped
		} else {
			params.zigzagPattern = base
		}
	case SpiralCW, SpiralCCW:
		params.spiralPattern = spiralPatternsCW[rng.Int(len(spiralPatternsCW))]
	}
	return params
}

// dirAt returns the direction the i-th link of a hallway of this style
// should use. Irregular resamples on every call ("d(2) each step");
// every other style's randomness was already resolved once when params
// was constructed.
func (params hallwayParams) dirAt(style HallwayStyle, i int, rng *prng.Source) direction.Dir {
	switch style {
	case Straight:
		return direction.East
	case ZigZag:
		return params.zigzagPattern[i%len(params.zigzagPattern)]
	case SpiralCW:
		return params.spiralPattern[i%6]
	case SpiralCCW:
		// Mirror image of the CW pattern: East and West swap, every
		// other direction is kept.
		d := params.spiralPattern[i%6]
		if d == direction.East || d == direction.West {
			return direction.Opposite(d)
		}
		return d
	case Irregular:
		if rng.Bool(2) {
			return direction.East
		}
		return direction.North
	default:
		return direction.East
	}
}

// genHallway builds a single-tile-wide corridor of length tiles per
// spec.md §4.D's two-argument overload.
func (p *Plane) genHallway(length int, style HallwayStyle) *Room {
	return p.genHallwayWide(length, 1, style)
}

// genHallwayWide builds a length*width corridor: width parallel lanes
// of length tiles, each lane linked along its own length by the style's
// turn sequence, with lanes cross-linked along a fixed perpendicular
// direction (a quarter turn from the hallway's very first step) so the
// whole structure stays a valid non-Euclidean subgraph even though the
// travel direction itself may wander per step.
func (p *Plane) genHallwayWide(length, width int, style HallwayStyle) *Room {
	if length < 1 {
		diag.Fatal("plane: genHallway requires length >= 1", "length", length)
	}
	if width < 1 {
		width = 1
	}

	params := newHallwayParams(style, p.rng)

	dirs := make([]direction.Dir, length)
	for i := range dirs {
		dirs[i] = params.dirAt(style, i, p.rng)
	}
	widthDir := direction.RotateCW(dirs[0])

	lanes := make([][]*tile.Tile, width)
	for w := 0; w < width; w++ {
		lane := make([]*tile.Tile, length)
		for i := 0; i < length; i++ {
			t := p.newTile()
			t.RoomID = tile.RoomHallway
			t.SetGlyph(".")
			lane[i] = t
		}
		lanes[w] = lane
	}

	for w := 0; w < width; w++ {
		for i := 0; i < length-1; i++ {
			lanes[w][i].Link(lanes[w][i+1], dirs[i])
		}
	}
	for w := 0; w < width-1; w++ {
		for i := 0; i < length; i++ {
			lanes[w][i].Link(lanes[w+1][i], widthDir)
		}
	}

	lastIdx := length - 2
	if lastIdx < 0 {
		lastIdx = 0
	}

	conns := []RoomConnection{
		{lanes[0][0], direction.Opposite(dirs[0])},
		{lanes[0][length-1], dirs[lastIdx]},
	}

	return &Room{Seed: lanes[0][length/2], Connections: conns}
}

// popConnection removes and returns one connection from r, in the order
// left by the room's own shuffle. Fatal if r has none left — the
// assembly algorithm is expected to keep enough spares per DoorAll.
func popConnection(r *Room) RoomConnection {
	n := len(r.Connections)
	if n == 0 {
		diag.Fatal("plane: popConnection called on a room with no free connections")
	}
	c := r.Connections[n-1]
	r.Connections = r.Connections[:n-1]
	return c
}

// connectChain pops one connection from each of a and b, generates a
// hallway (with probability 1/2 a length-1 straight stub, otherwise a
// random style whose length is the average of two dice in [4,9]), and
// links the hallway's two end connections to the popped room
// connections, carrying both sides' direction indices.
func (p *Plane) connectChain(a, b *Room) {
	connA := popConnection(a)
	connB := popConnection(b)

	var hall *Room
	if p.rng.Bool(2) {
		hall = p.genHallway(1, Straight)
	} else {
		length := (p.rng.IntRange(4, 10) + p.rng.IntRange(4, 10)) / 2
		style := HallwayStyle(p.rng.IntRange(int(Straight), int(Irregular)+1))
		hall = p.genHallway(length, style)
	}

	front := hall.Connections[0]
	back := hall.Connections[1]

	front.Tile.Link(connA.Tile, front.Dir, connA.Dir)
	back.Tile.Link(connB.Tile, back.Dir, connB.Dir)
}

// interlink adds up to k extra hallway connections between randomly
// chosen rooms, beyond the chain built by connectChain, to give the
// graph cycles. Each pick gets up to 10 tries; a room with no free
// connections is rejected, and picking the same room twice is rejected
// unless it still has at least two free connections. If no valid pair
// is found in 10 tries, generation stops early with a warning rather
// than failing outright — the map is still fully valid without it.
func (p *Plane) interlink(k int) {
	for n := 0; n < k; n++ {
		a, b, ok := p.pickInterlinkPair()
		if !ok {
			diag.Warn("plane: could not find a free connection pair for an extra interlink; stopping early",
				"completed", n, "requested", k)
			return
		}
		p.connectChain(a, b)
	}
}

func (p *Plane) pickInterlinkPair() (*Room, *Room, bool) {
	for try := 0; try < 10; try++ {
		a := p.Rooms[p.rng.Int(len(p.Rooms))]
		if len(a.Connections) == 0 {
			continue
		}
		b := p.Rooms[p.rng.Int(len(p.Rooms))]
		if a == b {
			if len(a.Connections) < 2 {
				continue
			}
		} else if len(b.Connections) == 0 {
			continue
		}
		return a, b, true
	}
	return nil, nil, false
}

// mustAllConnectionsFree is the allRoomConnectionsAreFree invariant
// check run after every generation phase: every remaining
// RoomConnection must still point at an absent link. A violation here
// is always a generator bug, never recoverable input, so it is fatal.
func mustAllConnectionsFree(rooms []*Room) {
	for _, r := range rooms {
		for _, c := range r.Connections {
			if c.Tile.Links[c.Dir].Present() {
				diag.Fatal("plane: room connection points at an occupied link",
					"tile", c.Tile.String(), "dir", c.Dir)
			}
		}
	}
}

// spawnAvatar places a minimal player-controlled entity on the starting
// room's seed tile, matching the prototype's fixed "@" avatar.
func (p *Plane) spawnAvatar() {
	avatar := entity.New()
	avatar.Add(entity.NewExistence("@", color.FromRGB(221, 162, 78), nil))
	p.Entities = append(p.Entities, avatar)

	start := p.StartingTile()
	start.Occupants = append(start.Occupants, avatar)
}
