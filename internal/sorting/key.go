// Package sorting orders groups and zones by a user-configured, prioritised
// list of sort criteria mixing preference fields (favorite, last used) with
// live attributes (name, mute, identifier).
package sorting

import (
	"fmt"
	"strings"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

// Key is an attribute a list can be sorted by.
type Key int

const (
	KeyFavorite Key = iota
	KeyIdentifier
	KeyLastUsedDate
	KeyMute
	KeyName

	keyCount
)

var keyNames = [keyCount]string{
	KeyFavorite:     "favorite",
	KeyIdentifier:   "identifier",
	KeyLastUsedDate: "last_used_date",
	KeyMute:         "mute",
	KeyName:         "name",
}

var keyLabels = [keyCount]string{
	KeyFavorite:     "Favorite",
	KeyIdentifier:   "Identifier",
	KeyLastUsedDate: "Last Used",
	KeyMute:         "Mute",
	KeyName:         "Name",
}

// AllKeys returns every key in declaration order.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Valid reports whether k is one of the declared keys.
func (k Key) Valid() bool { return k >= 0 && k < keyCount }

func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Label returns the name shown to users.
func (k Key) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return keyLabels[k]
}

// ParseKey parses the text form of a key, case-insensitively.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range keyNames {
		if s == name {
			return Key(k), nil
		}
	}
	return 0, models.InvalidArgument(fmt.Sprintf("unknown sort key %q", s))
}

func (k Key) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, models.InvalidArgument(fmt.Sprintf("invalid sort key %d", int(k)))
	}
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	v, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Order is the direction a key is sorted in.
type Order int

const (
	OrderAscending Order = iota
	OrderDescending
)

func (o Order) Valid() bool { return o == OrderAscending || o == OrderDescending }

func (o Order) String() string {
	switch o {
	case OrderAscending:
		return "ascending"
	case OrderDescending:
		return "descending"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// Reverse returns the opposite direction.
func (o Order) Reverse() Order {
	if o == OrderAscending {
		return OrderDescending
	}
	return OrderAscending
}

// ParseOrder parses "ascending"/"asc" or "descending"/"desc".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return OrderAscending, nil
	case "descending", "desc":
		return OrderDescending, nil
	}
	return 0, models.InvalidArgument(fmt.Sprintf("unknown sort order %q", s))
}

func (o Order) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, models.InvalidArgument(fmt.Sprintf("invalid sort order %d", int(o)))
	}
	return []byte(o.String()), nil
}

func (o *Order) UnmarshalText(b []byte) error {
	v, err := ParseOrder(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Describe returns how a key sorted in a given order reads to a user, e.g.
// "A to Z" for an ascending name sort.
func Describe(k Key, o Order) string {
	asc := o == OrderAscending
	switch k {
	case KeyFavorite:
		if asc {
			return "Favorites Last"
		}
		return "Favorites First"
	case KeyIdentifier:
		if asc {
			return "Lowest to Highest"
		}
		return "Highest to Lowest"
	case KeyLastUsedDate:
		if asc {
			return "Least Recently Used First"
		}
		return "Most Recently Used First"
	case KeyMute:
		if asc {
			return "Unmuted First"
		}
		return "Muted First"
	case KeyName:
		if asc {
			return "A to Z"
		}
		return "Z to A"
	}
	return k.String()
}
