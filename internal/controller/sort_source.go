package controller

import (
	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/sorting"
)

// SortSource returns a sorting source joining the live entities of kind with
// their preferences. Disabled zones are left out.
func (c *Controller) SortSource(kind models.EntityKind) sorting.Source {
	return sorting.SourceFunc(func() ([]sorting.Attributes, error) {
		return c.snapshot(kind)
	})
}

// GroupSortSource is SortSource for groups.
func (c *Controller) GroupSortSource() sorting.Source { return c.SortSource(models.KindGroup) }

// ZoneSortSource is SortSource for zones.
func (c *Controller) ZoneSortSource() sorting.Source { return c.SortSource(models.KindZone) }

func (c *Controller) snapshot(kind models.EntityKind) ([]sorting.Attributes, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.source == nil {
		return nil, models.ErrBindingRequired
	}
	st, err := c.source.State()
	if err != nil {
		return nil, err
	}

	table := c.prefs.Table(kind)
	attrs := func(id int, name string, mute bool) sorting.Attributes {
		a := sorting.Attributes{ID: id, Name: name, Mute: mute}
		if rec, err := table.Record(id); err == nil {
			a.Favorite = rec.FavoriteValue()
			a.LastUsedDate = rec.LastUsedDateValue()
		}
		return a
	}

	var out []sorting.Attributes
	if kind == models.KindGroup {
		out = make([]sorting.Attributes, 0, len(st.Groups))
		for _, g := range st.Groups {
			out = append(out, attrs(g.ID, g.Name, g.Muted()))
		}
		return out, nil
	}
	out = make([]sorting.Attributes, 0, len(st.Zones))
	for _, z := range st.Zones {
		if z.Disabled {
			continue
		}
		out = append(out, attrs(z.ID, z.Name, z.Mute))
	}
	return out, nil
}
