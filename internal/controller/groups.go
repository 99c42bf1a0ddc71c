package controller

import (
	"time"

	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/prefs"
)

// GroupReset forgets the preferences of group id.
func (c *Controller) GroupReset(id int) (prefs.Status, error) {
	return c.ResetEntity(models.GroupRef(id))
}

// GroupHasPreferences reports whether group id has an entry.
func (c *Controller) GroupHasPreferences(id int) bool {
	return c.HasPreferences(models.GroupRef(id))
}

// GroupPreferences returns a copy of the record for group id.
func (c *Controller) GroupPreferences(id int) (prefs.ObjectPreferences, error) {
	return c.Record(models.GroupRef(id))
}

// SetGroupPreferences replaces the record for group id.
func (c *Controller) SetGroupPreferences(id int, rec prefs.ObjectPreferences) (prefs.Status, error) {
	return c.SetRecord(models.GroupRef(id), rec)
}

func (c *Controller) GroupFavorite(id int) (bool, error) {
	return c.Favorite(models.GroupRef(id))
}

func (c *Controller) GroupLastUsedDate(id int) (time.Time, error) {
	return c.LastUsedDate(models.GroupRef(id))
}

func (c *Controller) GroupUseCount(id int) (uint64, error) {
	return c.UseCount(models.GroupRef(id))
}

// SetGroupFavorite sets the favorite flag of group id, stamping it used now.
func (c *Controller) SetGroupFavorite(id int, fav bool) (prefs.Status, error) {
	return c.SetFavorite(models.GroupRef(id), fav)
}

// SetGroupFavoriteAt sets the favorite flag of group id, stamping it used at.
func (c *Controller) SetGroupFavoriteAt(id int, fav bool, at time.Time) (prefs.Status, error) {
	return c.SetFavoriteAt(models.GroupRef(id), fav, at)
}

func (c *Controller) ToggleGroupFavorite(id int) (bool, error) {
	return c.ToggleFavorite(models.GroupRef(id))
}

func (c *Controller) SetGroupLastUsedDate(id int, t time.Time) (prefs.Status, error) {
	return c.SetLastUsedDate(models.GroupRef(id), t)
}

func (c *Controller) SetGroupUseCount(id int, n uint64) (prefs.Status, error) {
	return c.SetUseCount(models.GroupRef(id), n)
}

// MarkGroupUsed records a use of group id now.
func (c *Controller) MarkGroupUsed(id int) (uint64, error) {
	return c.MarkUsed(models.GroupRef(id))
}

func (c *Controller) MarkGroupUsedAt(id int, at time.Time) (uint64, error) {
	return c.MarkUsedAt(models.GroupRef(id), at)
}
