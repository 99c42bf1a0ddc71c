package controller

import (
	"fmt"
	"time"

	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/prefs"
)

func checkID(ref models.EntityRef) error {
	if ref.ID < 0 {
		return models.InvalidArgument(fmt.Sprintf("invalid %s identifier %d", ref.Kind, ref.ID))
	}
	return nil
}

// checkWrite validates ref against the live topology when bound.
// Called with c.mu held.
func (c *Controller) checkWrite(ref models.EntityRef) error {
	if err := checkID(ref); err != nil {
		return err
	}
	if c.source == nil {
		return nil
	}
	st, err := c.source.State()
	if err != nil {
		return fmt.Errorf("controller: live state: %w", err)
	}
	if !ref.Exists(&st) {
		return models.InvalidArgument(fmt.Sprintf("%s not present on controller %s", ref, c.controllerID))
	}
	return nil
}

// apply is the write primitive. It copies the record for ref (blank if
// absent), lets fn modify the copy and stores it back only if fn succeeds.
func (c *Controller) apply(ref models.EntityRef, fn func(*prefs.ObjectPreferences) (prefs.Status, error)) (prefs.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWrite(ref); err != nil {
		return prefs.StatusSuccess, err
	}

	table := c.prefs.Table(ref.Kind)
	var next prefs.ObjectPreferences
	if cur, err := table.Record(ref.ID); err == nil {
		next = *cur
	}
	status, err := fn(&next)
	if err != nil {
		return status, err
	}
	table.SetRecord(ref.ID, next)
	return status, nil
}

// record returns a copy of the stored record for ref.
func (c *Controller) record(ref models.EntityRef) (prefs.ObjectPreferences, error) {
	if err := checkID(ref); err != nil {
		return prefs.ObjectPreferences{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, err := c.prefs.Table(ref.Kind).Record(ref.ID)
	if err != nil {
		return prefs.ObjectPreferences{}, err
	}
	return *rec, nil
}

// Reset blanks every stored record. Entries stay present.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, table := range []*prefs.Table{c.prefs.Groups, c.prefs.Zones} {
		for _, id := range table.Identifiers() {
			table.SetRecord(id, prefs.ObjectPreferences{})
		}
	}
}

// ResetEntity writes a blank record for ref, creating the entry if absent.
func (c *Controller) ResetEntity(ref models.EntityRef) (prefs.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWrite(ref); err != nil {
		return prefs.StatusSuccess, err
	}
	return c.prefs.Table(ref.Kind).SetRecord(ref.ID, prefs.ObjectPreferences{}), nil
}

// HasPreferences reports whether ref has an entry.
func (c *Controller) HasPreferences(ref models.EntityRef) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prefs.Table(ref.Kind).Has(ref.ID)
}

// Record returns a copy of the record for ref, or ErrNotFound.
func (c *Controller) Record(ref models.EntityRef) (prefs.ObjectPreferences, error) {
	return c.record(ref)
}

// SetRecord replaces the record for ref.
func (c *Controller) SetRecord(ref models.EntityRef, rec prefs.ObjectPreferences) (prefs.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWrite(ref); err != nil {
		return prefs.StatusSuccess, err
	}
	return c.prefs.Table(ref.Kind).SetRecord(ref.ID, rec), nil
}

// Favorite returns the favorite flag of ref.
func (c *Controller) Favorite(ref models.EntityRef) (bool, error) {
	rec, err := c.record(ref)
	if err != nil {
		return false, err
	}
	return rec.Favorite()
}

// LastUsedDate returns when ref was last used.
func (c *Controller) LastUsedDate(ref models.EntityRef) (time.Time, error) {
	rec, err := c.record(ref)
	if err != nil {
		return time.Time{}, err
	}
	return rec.LastUsedDate()
}

// UseCount returns how often ref was used.
func (c *Controller) UseCount(ref models.EntityRef) (uint64, error) {
	rec, err := c.record(ref)
	if err != nil {
		return 0, err
	}
	return rec.UseCount()
}

// SetFavorite sets the favorite flag of ref and stamps its last-used date
// with the controller clock.
func (c *Controller) SetFavorite(ref models.EntityRef, fav bool) (prefs.Status, error) {
	return c.SetFavoriteAt(ref, fav, c.now())
}

// SetFavoriteAt sets the favorite flag of ref and stamps its last-used date
// with at. An unchanged flag leaves the date alone.
func (c *Controller) SetFavoriteAt(ref models.EntityRef, fav bool, at time.Time) (prefs.Status, error) {
	if err := prefs.CheckDate(at); err != nil {
		return prefs.StatusSuccess, err
	}
	return c.apply(ref, func(rec *prefs.ObjectPreferences) (prefs.Status, error) {
		status := rec.SetFavorite(fav)
		if !status.Changed() {
			return status, nil
		}
		if _, err := rec.SetLastUsedDate(at); err != nil {
			return status, err
		}
		return status, nil
	})
}

// ToggleFavorite flips the favorite flag of ref, treating unset as false,
// and returns the new value.
func (c *Controller) ToggleFavorite(ref models.EntityRef) (bool, error) {
	var fav bool
	at := c.now()
	_, err := c.apply(ref, func(rec *prefs.ObjectPreferences) (prefs.Status, error) {
		cur, _ := rec.FavoriteValue().Lookup()
		fav = !cur
		rec.SetFavorite(fav)
		return rec.SetLastUsedDate(at)
	})
	return fav, err
}

// SetLastUsedDate sets when ref was last used.
func (c *Controller) SetLastUsedDate(ref models.EntityRef, t time.Time) (prefs.Status, error) {
	if err := prefs.CheckDate(t); err != nil {
		return prefs.StatusSuccess, err
	}
	return c.apply(ref, func(rec *prefs.ObjectPreferences) (prefs.Status, error) {
		return rec.SetLastUsedDate(t)
	})
}

// SetUseCount sets how often ref was used.
func (c *Controller) SetUseCount(ref models.EntityRef, n uint64) (prefs.Status, error) {
	return c.apply(ref, func(rec *prefs.ObjectPreferences) (prefs.Status, error) {
		return rec.SetUseCount(n), nil
	})
}

// MarkUsed records a use of ref now and returns the new use count.
func (c *Controller) MarkUsed(ref models.EntityRef) (uint64, error) {
	return c.MarkUsedAt(ref, c.now())
}

// MarkUsedAt increments the use count of ref and stamps its last-used date
// with at.
func (c *Controller) MarkUsedAt(ref models.EntityRef, at time.Time) (uint64, error) {
	if err := prefs.CheckDate(at); err != nil {
		return 0, err
	}
	var n uint64
	_, err := c.apply(ref, func(rec *prefs.ObjectPreferences) (prefs.Status, error) {
		n = rec.IncrementUseCount()
		return rec.SetLastUsedDate(at)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
