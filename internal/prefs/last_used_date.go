package prefs

import (
	"fmt"
	"time"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

// LastUsedDate is the optional time an entity was last activated. Dates are
// held in UTC without a monotonic clock reading so that equality survives a
// persistence round trip.
type LastUsedDate struct {
	v optional[time.Time]
}

// NewLastUsedDate returns a LastUsedDate set to t.
func NewLastUsedDate(t time.Time) (LastUsedDate, error) {
	var d LastUsedDate
	_, err := d.Set(t)
	return d, err
}

func normalizeDate(t time.Time) time.Time {
	return t.Round(0).UTC()
}

func sameInstant(a, b time.Time) bool { return a.Equal(b) }

// CheckDate reports whether t can be stored as a last-used date: it must not
// be the zero time and its UTC year must lie in [0,9999], the range RFC 3339
// timestamps can represent.
func CheckDate(t time.Time) error {
	if t.IsZero() {
		return models.InvalidArgument("last used date must not be zero")
	}
	if y := t.UTC().Year(); y < 0 || y > 9999 {
		return models.InvalidArgument(fmt.Sprintf("last used date year %d outside [0,9999]", y))
	}
	return nil
}

// Init resets d to unset.
func (d *LastUsedDate) Init() { d.v.reset() }

// InitWith sets d to t. An already-matching value is not reported.
func (d *LastUsedDate) InitWith(t time.Time) error {
	_, err := d.Set(t)
	return err
}

// Get returns the date, or ErrNotInitialized if unset.
func (d LastUsedDate) Get() (time.Time, error) { return d.v.get() }

// Lookup returns the date and whether it is set.
func (d LastUsedDate) Lookup() (time.Time, bool) { return d.v.lookup() }

// IsSet reports whether the date has ever been set.
func (d LastUsedDate) IsSet() bool { return d.v.present }

// Set stores t. Dates CheckDate rejects leave d unchanged.
func (d *LastUsedDate) Set(t time.Time) (Status, error) {
	if err := CheckDate(t); err != nil {
		return StatusSuccess, err
	}
	return d.v.store(normalizeDate(t), sameInstant), nil
}

// Touch sets the date to now and returns it. Touch always counts as a change.
func (d *LastUsedDate) Touch() time.Time {
	now := normalizeDate(time.Now())
	d.v = optional[time.Time]{present: true, value: now}
	return now
}

// TouchAt is Touch with a caller-supplied date, checked like Set.
func (d *LastUsedDate) TouchAt(t time.Time) error {
	if err := CheckDate(t); err != nil {
		return err
	}
	d.v = optional[time.Time]{present: true, value: normalizeDate(t)}
	return nil
}

// Equal reports whether d and o are both unset or both set to the same instant.
func (d LastUsedDate) Equal(o LastUsedDate) bool { return d.v.equal(o.v, sameInstant) }
