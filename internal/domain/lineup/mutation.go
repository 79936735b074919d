package lineup

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSlot      = errors.New("unknown formation slot")
	ErrNumberOutOfRange = errors.New("squad number out of range")
	ErrNameTooLong      = errors.New("player name too long")
	ErrUnknownMutation  = errors.New("unknown player mutation")
)

const MaxNameLength = 64

// PlayerMutation is one edit to a single slot. The set of variants is closed.
type PlayerMutation interface {
	apply(slotID string, roster Roster) error
	Kind() string
}

// Rename sets the printed player name.
type Rename struct {
	Name string
}

// Renumber sets the squad number.
type Renumber struct {
	Number int
}

// SetCaptain hands the armband to the slot, or takes it away.
type SetCaptain struct {
	Captain bool
}

func (Rename) Kind() string     { return "rename" }
func (Renumber) Kind() string   { return "renumber" }
func (SetCaptain) Kind() string { return "set-captain" }

func (m Rename) apply(slotID string, roster Roster) error {
	name := strings.TrimSpace(m.Name)
	if len([]rune(name)) > MaxNameLength {
		return fmt.Errorf("%w: %d characters max", ErrNameTooLong, MaxNameLength)
	}
	p := roster[slotID]
	p.Name = name
	roster[slotID] = p
	return nil
}

func (m Renumber) apply(slotID string, roster Roster) error {
	if m.Number < MinNumber || m.Number > MaxNumber {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrNumberOutOfRange, m.Number, MinNumber, MaxNumber)
	}
	p := roster[slotID]
	p.Number = m.Number
	roster[slotID] = p
	return nil
}

func (m SetCaptain) apply(slotID string, roster Roster) error {
	if !m.Captain {
		p := roster[slotID]
		p.IsCaptain = false
		roster[slotID] = p
		return nil
	}
	for id, p := range roster {
		p.IsCaptain = id == slotID
		roster[id] = p
	}
	return nil
}

// ApplyPlayerMutation returns a new roster with the mutation applied to slotID.
// The input roster is never modified, so a failed mutation leaves no trace.
func ApplyPlayerMutation(roster Roster, slotID string, mutation PlayerMutation) (Roster, error) {
	if mutation == nil {
		return nil, ErrUnknownMutation
	}
	if _, ok := roster[slotID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slotID)
	}

	next := roster.Clone()
	if err := mutation.apply(slotID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ParsePlayerMutation builds a mutation from the field/value pair used by edit forms.
func ParsePlayerMutation(field string, value any) (PlayerMutation, error) {
	switch field {
	case "name":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: name must be a string", ErrUnknownMutation)
		}
		return Rename{Name: s}, nil
	case "number":
		switch n := value.(type) {
		case int:
			return Renumber{Number: n}, nil
		case int64:
			return Renumber{Number: int(n)}, nil
		case float64:
			if n != float64(int(n)) {
				return nil, fmt.Errorf("%w: %v is not a whole number", ErrNumberOutOfRange, n)
			}
			return Renumber{Number: int(n)}, nil
		}
		return nil, fmt.Errorf("%w: number must be numeric", ErrUnknownMutation)
	case "isCaptain":
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: isCaptain must be a boolean", ErrUnknownMutation)
		}
		return SetCaptain{Captain: b}, nil
	default:
		return nil, fmt.Errorf("%w: field %q", ErrUnknownMutation, field)
	}
}
