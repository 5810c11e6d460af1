// Package entity implements the minimal actor layer placed on tiles:
// entities holding an ordered set of components, and typed events
// dispatched through those components in priority order. Grounded in
// original_source/Wincrawl2/ecs.{hpp,cpp} (Component::Base, Event::*,
// Entity::dispatch), restated per spec.md §9's design note as a closed Go
// sum type (rather than the original's virtual-dispatch inheritance
// hierarchy) so the component set and event-handler coverage are both
// visible at compile time via type switches.
package entity

import (
	"github.com/lixenwraith/graphcrawl/color"
	"github.com/lixenwraith/graphcrawl/internal/diag"
)

// Priority orders components within an entity. Components dispatch in
// ascending Priority value; insertion order is preserved among components
// sharing the same priority.
//
// The distilled spec names the variants in the order
// (last, neutral, bonusModifier, baseModifier, first) without giving
// numeric values. Reading the names as intent — "first" components should
// run before "last" ones — fixes the ascending numeric order as
// First < BaseModifier < BonusModifier < Neutral < Last; see DESIGN.md.
type Priority int

const (
	PriorityFirst Priority = iota
	PriorityBaseModifier
	PriorityBonusModifier
	PriorityNeutral
	PriorityLast
)

// Component is implemented by every attachable behavior. The set is
// closed: Existence and Fragility are the only variants. Handle receives
// an Event by its concrete pointer type and mutates whichever fields it
// recognizes via a type switch; unrecognized event types are a no-op.
type Component interface {
	Priority() Priority
	Handle(Event)
	setOwner(*Entity)
}

// Event is implemented by every dispatchable event variant. Events are
// passed by pointer so components can mutate their fields in place across
// dispatch.
type Event interface {
	isEvent()
}

// DamageType is a bitset of damage flavors, carried from
// original_source/Wincrawl2/ecs.hpp's Event::Damage::type fields.
type DamageType uint16

const (
	Physical DamageType = 1 << iota
	Blunt
	Pierce
	Slash
	MentalCapacity
	Fire
	Ice
	Bullet
	Shockwave
)

// DealDamage asks an entity how much damage, and of what type, it deals.
type DealDamage struct {
	Amount int
	Type   DamageType
}

func (*DealDamage) isEvent() {}

// TakeDamage applies damage to an entity.
type TakeDamage struct {
	Amount int
	Type   DamageType
}

func (*TakeDamage) isEvent() {}

// GetRendered asks an entity how to draw itself. A zero Glyph means no
// component painted; the caller (the view) then falls back to the tile's
// own glyph and colors.
type GetRendered struct {
	Glyph   string
	FgColor color.RGBA
	BgColor color.RGBA
}

func (*GetRendered) isEvent() {}

// AddSubentity asks an entity to accept another entity as a sub-entity
// (e.g. an item entering an inventory, or an occupant entering a
// container). Force requests the add succeed even against a policy that
// would otherwise refuse it; Success reports the outcome.
type AddSubentity struct {
	Entity  *Entity
	Force   bool
	Success bool
}

func (*AddSubentity) isEvent() {}

// RemoveSubentity is the inverse of AddSubentity.
type RemoveSubentity struct {
	Entity  *Entity
	Force   bool
	Success bool
}

func (*RemoveSubentity) isEvent() {}

// MoveTo asks an entity to move itself from its current super-entity to
// Entity, a two-phase transaction: remove from the origin, then add to
// the destination. If the add fails, the handler must re-add to the
// origin — a failure there is a fatal invariant violation (spec.md §7),
// not a recoverable condition, since it would otherwise strand the entity
// with no super-entity at all.
type MoveTo struct {
	Entity  *Entity
	Force   bool
	Success bool
}

func (*MoveTo) isEvent() {}

// Existence gives an entity a visual presence (glyph, foreground color)
// and a place in the subentity hierarchy.
type Existence struct {
	Glyph       string
	FgColor     color.RGBA
	Superentity *Entity
	Subentities map[*Entity]struct{}

	// owner is set by Entity.Add so MoveTo can name this entity when
	// asking its super/destination entities to remove/accept it.
	owner *Entity
}

// NewExistence constructs an Existence component.
func NewExistence(glyph string, fg color.RGBA, superentity *Entity) *Existence {
	return &Existence{
		Glyph:       glyph,
		FgColor:     fg,
		Superentity: superentity,
		Subentities: make(map[*Entity]struct{}),
	}
}

func (*Existence) Priority() Priority { return PriorityNeutral }

func (c *Existence) setOwner(e *Entity) { c.owner = e }

func (c *Existence) Handle(evt Event) {
	switch ev := evt.(type) {
	case *GetRendered:
		ev.Glyph = c.Glyph
		ev.FgColor = c.FgColor
	case *AddSubentity:
		if ev.Entity == nil {
			return
		}
		c.Subentities[ev.Entity] = struct{}{}
		ev.Success = true
	case *RemoveSubentity:
		if ev.Entity == nil {
			return
		}
		delete(c.Subentities, ev.Entity)
		ev.Success = true
	case *MoveTo:
		c.handleMoveTo(ev)
	}
}

func (c *Existence) handleMoveTo(evt *MoveTo) {
	self := c.owner

	rem := &RemoveSubentity{Entity: self, Force: evt.Force}
	c.Superentity.Dispatch(rem)
	if !rem.Success {
		return
	}

	add := &AddSubentity{Entity: self, Force: evt.Force}
	evt.Entity.Dispatch(add)
	if !add.Success {
		readd := &AddSubentity{Entity: self, Force: true}
		c.Superentity.Dispatch(readd)
		if !readd.Success {
			diag.Fatal("entity: MoveTo could not re-add to origin after failed add to destination",
				"entity", self)
		}
		return
	}

	c.Superentity = evt.Entity
	evt.Success = true
}

// Fragility gives an entity hit points and melee combat semantics.
type Fragility struct {
	HP int
}

// NewFragility constructs a Fragility component with the given starting HP.
func NewFragility(hp int) *Fragility {
	return &Fragility{HP: hp}
}

func (*Fragility) Priority() Priority { return PriorityNeutral }

func (*Fragility) setOwner(*Entity) {}

func (c *Fragility) Handle(evt Event) {
	switch ev := evt.(type) {
	case *TakeDamage:
		c.HP -= ev.Amount
	case *DealDamage:
		// Placeholder unarmed attack ("fist"), per
		// original_source/Wincrawl2/ecs.cpp's Fragility::handleEvent(DealDamage*).
		ev.Amount = 10
		ev.Type |= Physical | Blunt
	}
}
