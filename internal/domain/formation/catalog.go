package formation

import (
	"fmt"
	"slices"
)

// DefaultID is the formation a fresh or reset lineup starts from.
const DefaultID = "3-5-2"

// Slot is one named position on the pitch. X runs left to right and Y from the
// attacking end (0) to the own goal line (100), both as percentages.
type Slot struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Formation is an ordered slot layout.
type Formation struct {
	ID    string `json:"id"`
	Slots []Slot `json:"slots"`
}

// SlotIDs returns the slot ids in layout order.
func (f Formation) SlotIDs() []string {
	out := make([]string, 0, len(f.Slots))
	for _, slot := range f.Slots {
		out = append(out, slot.ID)
	}
	return out
}

// HasSlot reports whether id belongs to the layout.
func (f Formation) HasSlot(id string) bool {
	return slices.ContainsFunc(f.Slots, func(s Slot) bool { return s.ID == id })
}

// Catalog is an immutable lookup of formation layouts.
type Catalog struct {
	order      []string
	formations map[string]Formation
	defaultID  string
}

// NewCatalog validates the layouts and indexes them by id, keeping the given order.
func NewCatalog(defaultID string, formations ...Formation) (*Catalog, error) {
	c := &Catalog{
		order:      make([]string, 0, len(formations)),
		formations: make(map[string]Formation, len(formations)),
		defaultID:  defaultID,
	}
	for _, f := range formations {
		if err := validate(f); err != nil {
			return nil, err
		}
		if _, exists := c.formations[f.ID]; exists {
			return nil, fmt.Errorf("duplicate formation %q", f.ID)
		}
		c.order = append(c.order, f.ID)
		c.formations[f.ID] = cloneFormation(f)
	}
	if _, ok := c.formations[defaultID]; !ok {
		return nil, fmt.Errorf("default formation %q is not in the catalog", defaultID)
	}
	return c, nil
}

// Builtin returns the catalog shipped with the service.
func Builtin() *Catalog {
	c, err := NewCatalog(DefaultID, builtinFormations()...)
	if err != nil {
		panic(fmt.Sprintf("formation: invalid builtin catalog: %v", err))
	}
	return c
}

// IDs lists the known formation ids in display order.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.order)
}

func (c *Catalog) Default() string {
	return c.defaultID
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.formations[id]
	return ok
}

// Lookup returns a copy of the layout for id.
func (c *Catalog) Lookup(id string) (Formation, bool) {
	f, ok := c.formations[id]
	if !ok {
		return Formation{}, false
	}
	return cloneFormation(f), true
}

// MustLookup is Lookup for callers that already checked Has; an unknown id is a programming error.
func (c *Catalog) MustLookup(id string) Formation {
	f, ok := c.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("formation: unknown formation %q", id))
	}
	return f
}

// All returns every layout in display order.
func (c *Catalog) All() []Formation {
	out := make([]Formation, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneFormation(c.formations[id]))
	}
	return out
}

func validate(f Formation) error {
	if f.ID == "" {
		return fmt.Errorf("formation id is required")
	}
	if len(f.Slots) == 0 {
		return fmt.Errorf("formation %q has no slots", f.ID)
	}
	seen := make(map[string]struct{}, len(f.Slots))
	for _, slot := range f.Slots {
		if slot.ID == "" {
			return fmt.Errorf("formation %q has a slot without id", f.ID)
		}
		if _, dup := seen[slot.ID]; dup {
			return fmt.Errorf("formation %q has duplicate slot %q", f.ID, slot.ID)
		}
		seen[slot.ID] = struct{}{}
		if slot.X < 0 || slot.X > 100 || slot.Y < 0 || slot.Y > 100 {
			return fmt.Errorf("formation %q slot %q is off the pitch", f.ID, slot.ID)
		}
	}
	return nil
}

func cloneFormation(f Formation) Formation {
	return Formation{ID: f.ID, Slots: slices.Clone(f.Slots)}
}
