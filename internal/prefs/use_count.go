package prefs

// UseCount is the optional number of times an entity has been activated.
type UseCount struct {
	v optional[uint64]
}

// NewUseCount returns a UseCount set to n.
func NewUseCount(n uint64) UseCount {
	var c UseCount
	c.Set(n)
	return c
}

// Init resets c to unset.
func (c *UseCount) Init() { c.v.reset() }

// InitWith sets c to n. An already-matching value is not reported.
func (c *UseCount) InitWith(n uint64) { c.Set(n) }

// Get returns the count, or ErrNotInitialized if unset.
func (c UseCount) Get() (uint64, error) { return c.v.get() }

// Lookup returns the count and whether it is set.
func (c UseCount) Lookup() (uint64, bool) { return c.v.lookup() }

// IsSet reports whether the count has ever been set.
func (c UseCount) IsSet() bool { return c.v.present }

// Set stores n.
func (c *UseCount) Set(n uint64) Status { return c.v.store(n, same[uint64]) }

// Increment adds one, counting an unset value as zero, and returns the result.
func (c *UseCount) Increment() uint64 {
	n := c.v.value + 1
	c.v.store(n, same[uint64])
	return n
}

// Touch records one more use. It is Increment under the name shared with
// LastUsedDate.
func (c *UseCount) Touch() uint64 { return c.Increment() }

// Reset sets the count to zero.
func (c *UseCount) Reset() Status { return c.Set(0) }

// Equal reports whether c and o are both unset or both set to the same count.
func (c UseCount) Equal(o UseCount) bool { return c.v.equal(o.v, same[uint64]) }
