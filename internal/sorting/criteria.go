package sorting

import (
	"fmt"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

// Criterion is one (key, order) entry of a sort criteria list.
type Criterion struct {
	Key   Key   `toml:"key" json:"key"`
	Order Order `toml:"order" json:"order"`
}

func (c Criterion) String() string {
	return fmt.Sprintf("%s %s", c.Key, c.Order)
}

// Criteria is an ordered list of sort criteria, highest priority first. Each
// key appears at most once.
//
// Criteria is not safe for concurrent use.
type Criteria struct {
	items []Criterion
}

// NewCriteria builds a list from items in priority order.
func NewCriteria(items ...Criterion) (*Criteria, error) {
	c := &Criteria{}
	for _, it := range items {
		if err := c.Add(it.Key, it.Order); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefaultCriteria returns favorites first, then names A to Z.
func DefaultCriteria() *Criteria {
	return &Criteria{items: []Criterion{
		{Key: KeyFavorite, Order: OrderDescending},
		{Key: KeyName, Order: OrderAscending},
	}}
}

func (c *Criteria) Count() int { return len(c.items) }

// HasKey reports whether key is in the list.
func (c *Criteria) HasKey(key Key) bool { return c.IndexOf(key) >= 0 }

// IndexOf returns the priority index of key, or -1.
func (c *Criteria) IndexOf(key Key) int {
	for i, it := range c.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func (c *Criteria) checkIndex(i int) error {
	if i < 0 || i >= len(c.items) {
		return models.InvalidArgument(fmt.Sprintf("criteria index %d out of range [0,%d)", i, len(c.items)))
	}
	return nil
}

func checkCriterion(key Key, order Order) error {
	if !key.Valid() {
		return models.InvalidArgument(fmt.Sprintf("invalid sort key %d", int(key)))
	}
	if !order.Valid() {
		return models.InvalidArgument(fmt.Sprintf("invalid sort order %d", int(order)))
	}
	return nil
}

func (c *Criteria) KeyAt(i int) (Key, error) {
	if err := c.checkIndex(i); err != nil {
		return 0, err
	}
	return c.items[i].Key, nil
}

func (c *Criteria) OrderAt(i int) (Order, error) {
	if err := c.checkIndex(i); err != nil {
		return 0, err
	}
	return c.items[i].Order, nil
}

// OrderFor returns the order configured for key, or ErrNotFound.
func (c *Criteria) OrderFor(key Key) (Order, error) {
	i := c.IndexOf(key)
	if i < 0 {
		return 0, models.NotFound(fmt.Sprintf("sort key %s not in criteria", key))
	}
	return c.items[i].Order, nil
}

// Add appends key as the lowest-priority criterion.
func (c *Criteria) Add(key Key, order Order) error {
	return c.Insert(len(c.items), key, order)
}

// Insert places key at priority index i, shifting later criteria down.
func (c *Criteria) Insert(i int, key Key, order Order) error {
	if err := checkCriterion(key, order); err != nil {
		return err
	}
	if c.HasKey(key) {
		return models.InvalidArgument(fmt.Sprintf("sort key %s already in criteria", key))
	}
	if i < 0 || i > len(c.items) {
		return models.InvalidArgument(fmt.Sprintf("criteria index %d out of range [0,%d]", i, len(c.items)))
	}
	c.items = append(c.items, Criterion{})
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = Criterion{Key: key, Order: order}
	return nil
}

// RemoveAt removes the criterion at i, shifting later criteria up.
func (c *Criteria) RemoveAt(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

// Move moves the criterion at from to index to.
func (c *Criteria) Move(from, to int) error {
	if err := c.checkIndex(from); err != nil {
		return err
	}
	if err := c.checkIndex(to); err != nil {
		return err
	}
	it := c.items[from]
	c.items = append(c.items[:from], c.items[from+1:]...)
	c.items = append(c.items, Criterion{})
	copy(c.items[to+1:], c.items[to:])
	c.items[to] = it
	return nil
}

// SetOrderAt changes the order of the criterion at i.
func (c *Criteria) SetOrderAt(i int, order Order) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if !order.Valid() {
		return models.InvalidArgument(fmt.Sprintf("invalid sort order %d", int(order)))
	}
	c.items[i].Order = order
	return nil
}

// AvailableKeys returns the keys not yet in the list, in declaration order.
func (c *Criteria) AvailableKeys() []Key {
	var keys []Key
	for _, k := range AllKeys() {
		if !c.HasKey(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Items returns a copy of the list.
func (c *Criteria) Items() []Criterion {
	out := make([]Criterion, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Criteria) Clone() *Criteria {
	return &Criteria{items: c.Items()}
}
