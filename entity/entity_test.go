package entity

import (
	"testing"

	"github.com/lixenwraith/graphcrawl/color"
)

// orderRecorder is a minimal Component used only to observe dispatch order.
type orderRecorder struct {
	p   Priority
	tag string
	log *[]string
}

func (r *orderRecorder) Priority() Priority   { return r.p }
func (r *orderRecorder) setOwner(*Entity)     {}
func (r *orderRecorder) Handle(evt Event) {
	if _, ok := evt.(*GetRendered); ok {
		*r.log = append(*r.log, r.tag)
	}
}

func TestDispatchOrdersByAscendingPriority(t *testing.T) {
	var log []string
	e := New()
	e.Add(&orderRecorder{p: PriorityLast, tag: "last", log: &log})
	e.Add(&orderRecorder{p: PriorityFirst, tag: "first", log: &log})
	e.Add(&orderRecorder{p: PriorityNeutral, tag: "neutral-a", log: &log})
	e.Add(&orderRecorder{p: PriorityNeutral, tag: "neutral-b", log: &log})

	e.Dispatch(&GetRendered{})

	want := []string{"first", "neutral-a", "neutral-b", "last"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
}

func TestRemoveDropsComponent(t *testing.T) {
	var log []string
	e := New()
	h := e.Add(&orderRecorder{p: PriorityNeutral, tag: "gone", log: &log})
	e.Add(&orderRecorder{p: PriorityNeutral, tag: "stays", log: &log})

	e.Remove(h)
	e.Dispatch(&GetRendered{})

	if len(log) != 1 || log[0] != "stays" {
		t.Fatalf("got %v, want [stays]", log)
	}
}

func TestExistenceGetRendered(t *testing.T) {
	e := New()
	fg := color.FromRGB(200, 10, 10)
	e.Add(NewExistence("@", fg, nil))

	evt := &GetRendered{}
	e.Dispatch(evt)

	if evt.Glyph != "@" || evt.FgColor != fg {
		t.Fatalf("got glyph=%q fg=%v", evt.Glyph, evt.FgColor)
	}
}

func TestFragilityTakeAndDealDamage(t *testing.T) {
	e := New()
	frag := NewFragility(30)
	e.Add(frag)

	e.Dispatch(&TakeDamage{Amount: 12})
	if frag.HP != 18 {
		t.Fatalf("HP after TakeDamage(12) = %d, want 18", frag.HP)
	}

	deal := &DealDamage{}
	e.Dispatch(deal)
	if deal.Amount != 10 || deal.Type&Physical == 0 || deal.Type&Blunt == 0 {
		t.Fatalf("unexpected DealDamage result: %+v", deal)
	}
}

func TestAddRemoveSubentity(t *testing.T) {
	parent := New()
	parentExistence := NewExistence("P", color.RGBA{}, nil)
	parent.Add(parentExistence)

	child := New()

	add := &AddSubentity{Entity: child}
	parent.Dispatch(add)
	if !add.Success {
		t.Fatal("AddSubentity failed")
	}
	if _, ok := parentExistence.Subentities[child]; !ok {
		t.Fatal("child missing from Subentities after add")
	}

	rem := &RemoveSubentity{Entity: child}
	parent.Dispatch(rem)
	if !rem.Success {
		t.Fatal("RemoveSubentity failed")
	}
	if _, ok := parentExistence.Subentities[child]; ok {
		t.Fatal("child still present after remove")
	}
}

func TestMoveToTransfersSuperentity(t *testing.T) {
	origin := New()
	originExistence := NewExistence("O", color.RGBA{}, nil)
	origin.Add(originExistence)

	dest := New()
	destExistence := NewExistence("D", color.RGBA{}, nil)
	dest.Add(destExistence)

	mover := New()
	moverExistence := NewExistence("m", color.RGBA{}, origin)
	mover.Add(moverExistence)
	originExistence.Subentities[mover] = struct{}{}

	move := &MoveTo{Entity: dest}
	mover.Dispatch(move)

	if !move.Success {
		t.Fatal("MoveTo reported failure")
	}
	if moverExistence.Superentity != dest {
		t.Fatalf("Superentity = %v, want dest", moverExistence.Superentity)
	}
	if _, ok := originExistence.Subentities[mover]; ok {
		t.Fatal("mover still listed under origin's Subentities")
	}
	if _, ok := destExistence.Subentities[mover]; !ok {
		t.Fatal("mover not listed under dest's Subentities")
	}
}

func TestMoveToFailsCleanlyWhenDestinationRefuses(t *testing.T) {
	origin := New()
	originExistence := NewExistence("O", color.RGBA{}, nil)
	origin.Add(originExistence)

	// dest has no Existence component, so it never sets AddSubentity's
	// Success field — the add fails and the handler must restore mover
	// to origin rather than strand it.
	dest := New()

	mover := New()
	moverExistence := NewExistence("m", color.RGBA{}, origin)
	mover.Add(moverExistence)
	originExistence.Subentities[mover] = struct{}{}

	move := &MoveTo{Entity: dest}
	mover.Dispatch(move)

	if move.Success {
		t.Fatal("MoveTo reported success against a destination with no Existence component")
	}
	if moverExistence.Superentity != origin {
		t.Fatalf("Superentity = %v, want origin restored", moverExistence.Superentity)
	}
	if _, ok := originExistence.Subentities[mover]; !ok {
		t.Fatal("mover not restored to origin's Subentities after failed move")
	}
}
