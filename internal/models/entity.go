package models

import "fmt"

// EntityKind discriminates the two kinds of addressable audio entity.
type EntityKind int

const (
	KindZone EntityKind = iota
	KindGroup
)

func (k EntityKind) String() string {
	switch k {
	case KindZone:
		return "zone"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// ParseEntityKind accepts "zone"/"zones" and "group"/"groups".
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "zone", "zones":
		return KindZone, nil
	case "group", "groups":
		return KindGroup, nil
	}
	return 0, InvalidArgument(fmt.Sprintf("unknown entity kind %q", s))
}

// EntityRef names a group or a zone by kind and identifier.
type EntityRef struct {
	Kind EntityKind
	ID   int
}

// ZoneRef returns a reference to zone id.
func ZoneRef(id int) EntityRef { return EntityRef{Kind: KindZone, ID: id} }

// GroupRef returns a reference to group id.
func GroupRef(id int) EntityRef { return EntityRef{Kind: KindGroup, ID: id} }

func (r EntityRef) String() string {
	return fmt.Sprintf("%s %d", r.Kind, r.ID)
}

// Exists reports whether the referenced entity is present in s.
func (r EntityRef) Exists(s *State) bool {
	switch r.Kind {
	case KindZone:
		return s.FindZone(r.ID) != nil
	case KindGroup:
		return s.FindGroup(r.ID) != nil
	}
	return false
}
