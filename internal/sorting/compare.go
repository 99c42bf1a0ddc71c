package sorting

import (
	"cmp"
	"slices"
	"strings"

	"github.com/micro-nova/amplipi-prefs/internal/prefs"
)

// Attributes is the snapshot of one group or zone that sorting reads.
type Attributes struct {
	ID           int
	Name         string
	Mute         bool
	Favorite     prefs.Favorite
	LastUsedDate prefs.LastUsedDate
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func orient(r int, o Order) int {
	if o == OrderDescending {
		return -r
	}
	return r
}

func compareCriterion(c Criterion, a, b Attributes) int {
	switch c.Key {
	case KeyFavorite:
		af, _ := a.Favorite.Lookup()
		bf, _ := b.Favorite.Lookup()
		return orient(compareBool(af, bf), c.Order)
	case KeyIdentifier:
		return orient(cmp.Compare(a.ID, b.ID), c.Order)
	case KeyLastUsedDate:
		ad, aok := a.LastUsedDate.Lookup()
		bd, bok := b.LastUsedDate.Lookup()
		// Never used sorts first whichever way dates are ordered.
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		}
		return orient(ad.Compare(bd), c.Order)
	case KeyMute:
		return orient(compareBool(a.Mute, b.Mute), c.Order)
	case KeyName:
		return orient(strings.Compare(a.Name, b.Name), c.Order)
	}
	return 0
}

// Compare orders a and b by each criterion in priority order, then by
// ascending identifier, so distinct identifiers never compare equal.
func (c *Criteria) Compare(a, b Attributes) int {
	for _, it := range c.items {
		if r := compareCriterion(it, a, b); r != 0 {
			return r
		}
	}
	return cmp.Compare(a.ID, b.ID)
}

// Sort orders attrs in place by c.
func Sort(c *Criteria, attrs []Attributes) {
	slices.SortFunc(attrs, c.Compare)
}
