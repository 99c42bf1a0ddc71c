package prefs

import (
	"encoding/json"
	"time"
)

// ObjectPreferences is the preference record for one group or zone. The zero
// value has every field unset. Records are values; copying one copies its state.
type ObjectPreferences struct {
	favorite     Favorite
	lastUsedDate LastUsedDate
	useCount     UseCount
}

// Init resets every field to unset.
func (p *ObjectPreferences) Init() {
	p.favorite.Init()
	p.lastUsedDate.Init()
	p.useCount.Init()
}

// InitFrom makes p a copy of o field by field. Fields that already match are
// not an error.
func (p *ObjectPreferences) InitFrom(o ObjectPreferences) error {
	if v, ok := o.favorite.Lookup(); ok {
		p.favorite.InitWith(v)
	} else {
		p.favorite.Init()
	}
	if v, ok := o.lastUsedDate.Lookup(); ok {
		if err := p.lastUsedDate.InitWith(v); err != nil {
			return err
		}
	} else {
		p.lastUsedDate.Init()
	}
	if v, ok := o.useCount.Lookup(); ok {
		p.useCount.InitWith(v)
	} else {
		p.useCount.Init()
	}
	return nil
}

// Favorite returns the favorite flag, or ErrNotInitialized.
func (p ObjectPreferences) Favorite() (bool, error) { return p.favorite.Get() }

// LastUsedDate returns the last-used date, or ErrNotInitialized.
func (p ObjectPreferences) LastUsedDate() (time.Time, error) { return p.lastUsedDate.Get() }

// UseCount returns the use count, or ErrNotInitialized.
func (p ObjectPreferences) UseCount() (uint64, error) { return p.useCount.Get() }

// FavoriteValue returns the favorite scalar itself.
func (p ObjectPreferences) FavoriteValue() Favorite { return p.favorite }

// LastUsedDateValue returns the last-used date scalar itself.
func (p ObjectPreferences) LastUsedDateValue() LastUsedDate { return p.lastUsedDate }

// UseCountValue returns the use count scalar itself.
func (p ObjectPreferences) UseCountValue() UseCount { return p.useCount }

func (p *ObjectPreferences) SetFavorite(v bool) Status { return p.favorite.Set(v) }

func (p *ObjectPreferences) SetLastUsedDate(t time.Time) (Status, error) {
	return p.lastUsedDate.Set(t)
}

func (p *ObjectPreferences) SetUseCount(n uint64) Status { return p.useCount.Set(n) }

// ToggleFavorite inverts a set favorite flag.
func (p *ObjectPreferences) ToggleFavorite() (bool, error) { return p.favorite.Toggle() }

// TouchLastUsedDate sets the last-used date to now.
func (p *ObjectPreferences) TouchLastUsedDate() time.Time { return p.lastUsedDate.Touch() }

// IncrementUseCount adds one use and returns the new count.
func (p *ObjectPreferences) IncrementUseCount() uint64 { return p.useCount.Increment() }

// ResetUseCount sets the use count to zero.
func (p *ObjectPreferences) ResetUseCount() Status { return p.useCount.Reset() }

// IsEmpty reports whether every field is unset.
func (p ObjectPreferences) IsEmpty() bool {
	return !p.favorite.IsSet() && !p.lastUsedDate.IsSet() && !p.useCount.IsSet()
}

// Equal compares all three fields, including whether each is set.
func (p ObjectPreferences) Equal(o ObjectPreferences) bool {
	return p.favorite.Equal(o.favorite) &&
		p.lastUsedDate.Equal(o.lastUsedDate) &&
		p.useCount.Equal(o.useCount)
}

// Fields is the persisted form of a record. A nil field is unset.
type Fields struct {
	Favorite     *bool      `json:"favorite,omitempty"`
	LastUsedDate *time.Time `json:"last_used_date,omitempty"`
	UseCount     *uint64    `json:"use_count,omitempty"`
}

// Fields returns the persisted form of p.
func (p ObjectPreferences) Fields() Fields {
	var f Fields
	if v, ok := p.favorite.Lookup(); ok {
		f.Favorite = &v
	}
	if v, ok := p.lastUsedDate.Lookup(); ok {
		f.LastUsedDate = &v
	}
	if v, ok := p.useCount.Lookup(); ok {
		f.UseCount = &v
	}
	return f
}

// FromFields builds a record from its persisted form.
func FromFields(f Fields) (ObjectPreferences, error) {
	var p ObjectPreferences
	if f.Favorite != nil {
		p.favorite.InitWith(*f.Favorite)
	}
	if f.LastUsedDate != nil {
		if err := p.lastUsedDate.InitWith(*f.LastUsedDate); err != nil {
			return ObjectPreferences{}, err
		}
	}
	if f.UseCount != nil {
		p.useCount.InitWith(*f.UseCount)
	}
	return p, nil
}

func (p ObjectPreferences) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields())
}

func (p *ObjectPreferences) UnmarshalJSON(data []byte) error {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	rec, err := FromFields(f)
	if err != nil {
		return err
	}
	*p = rec
	return nil
}
