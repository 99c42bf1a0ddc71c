package prefs

// Favorite is an optional favorite flag.
type Favorite struct {
	v optional[bool]
}

// NewFavorite returns a Favorite set to v.
func NewFavorite(v bool) Favorite {
	var f Favorite
	f.Set(v)
	return f
}

// Init resets f to unset.
func (f *Favorite) Init() { f.v.reset() }

// InitWith sets f to v. An already-matching value is not reported.
func (f *Favorite) InitWith(v bool) { f.Set(v) }

// Get returns the flag, or ErrNotInitialized if unset.
func (f Favorite) Get() (bool, error) { return f.v.get() }

// Lookup returns the flag and whether it is set.
func (f Favorite) Lookup() (bool, bool) { return f.v.lookup() }

// IsSet reports whether the flag has ever been set.
func (f Favorite) IsSet() bool { return f.v.present }

// Set stores v.
func (f *Favorite) Set(v bool) Status { return f.v.store(v, same[bool]) }

// Toggle inverts a set flag and returns the new value. An unset flag cannot
// be toggled.
func (f *Favorite) Toggle() (bool, error) {
	cur, err := f.v.get()
	if err != nil {
		return false, err
	}
	f.v.store(!cur, same[bool])
	return !cur, nil
}

// Equal reports whether f and o are both unset or both set to the same value.
func (f Favorite) Equal(o Favorite) bool { return f.v.equal(o.v, same[bool]) }
