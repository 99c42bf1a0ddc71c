package controller

import (
	"time"

	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/prefs"
)

// ZoneReset forgets the preferences of zone id.
func (c *Controller) ZoneReset(id int) (prefs.Status, error) {
	return c.ResetEntity(models.ZoneRef(id))
}

// ZoneHasPreferences reports whether zone id has an entry.
func (c *Controller) ZoneHasPreferences(id int) bool {
	return c.HasPreferences(models.ZoneRef(id))
}

// ZonePreferences returns a copy of the record for zone id.
func (c *Controller) ZonePreferences(id int) (prefs.ObjectPreferences, error) {
	return c.Record(models.ZoneRef(id))
}

// SetZonePreferences replaces the record for zone id.
func (c *Controller) SetZonePreferences(id int, rec prefs.ObjectPreferences) (prefs.Status, error) {
	return c.SetRecord(models.ZoneRef(id), rec)
}

func (c *Controller) ZoneFavorite(id int) (bool, error) {
	return c.Favorite(models.ZoneRef(id))
}

func (c *Controller) ZoneLastUsedDate(id int) (time.Time, error) {
	return c.LastUsedDate(models.ZoneRef(id))
}

func (c *Controller) ZoneUseCount(id int) (uint64, error) {
	return c.UseCount(models.ZoneRef(id))
}

// SetZoneFavorite sets the favorite flag of zone id, stamping it used now.
func (c *Controller) SetZoneFavorite(id int, fav bool) (prefs.Status, error) {
	return c.SetFavorite(models.ZoneRef(id), fav)
}

// SetZoneFavoriteAt sets the favorite flag of zone id, stamping it used at.
func (c *Controller) SetZoneFavoriteAt(id int, fav bool, at time.Time) (prefs.Status, error) {
	return c.SetFavoriteAt(models.ZoneRef(id), fav, at)
}

func (c *Controller) ToggleZoneFavorite(id int) (bool, error) {
	return c.ToggleFavorite(models.ZoneRef(id))
}

func (c *Controller) SetZoneLastUsedDate(id int, t time.Time) (prefs.Status, error) {
	return c.SetLastUsedDate(models.ZoneRef(id), t)
}

func (c *Controller) SetZoneUseCount(id int, n uint64) (prefs.Status, error) {
	return c.SetUseCount(models.ZoneRef(id), n)
}

// MarkZoneUsed records a use of zone id now.
func (c *Controller) MarkZoneUsed(id int) (uint64, error) {
	return c.MarkUsed(models.ZoneRef(id))
}

func (c *Controller) MarkZoneUsedAt(id int, at time.Time) (uint64, error) {
	return c.MarkUsedAt(models.ZoneRef(id), at)
}
