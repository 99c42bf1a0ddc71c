package prefs

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

// Table maps entity identifiers to preference records.
//
// Reads and writes are deliberately asymmetric: Record fails with
// ErrNotFound for an identifier with no entry, while SetRecord inserts one.
// A lookup never creates an entry.
type Table struct {
	records map[int]*ObjectPreferences
}

// NewTable returns an empty table. The zero Table is also ready to use.
func NewTable() *Table {
	return &Table{records: make(map[int]*ObjectPreferences)}
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.records) }

// Has reports whether id has an entry, whether or not any field is set.
func (t *Table) Has(id int) bool {
	_, ok := t.records[id]
	return ok
}

// Identifiers returns the identifiers with entries, ascending.
func (t *Table) Identifiers() []int {
	ids := make([]int, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Record returns the stored record for id. Mutations through the returned
// pointer change the table.
func (t *Table) Record(id int) (*ObjectPreferences, error) {
	rec, ok := t.records[id]
	if !ok {
		return nil, models.NotFound(fmt.Sprintf("no preferences for %d", id))
	}
	return rec, nil
}

// SetRecord inserts or replaces the entry for id with a copy of rec. An
// existing entry equal to rec is left alone and StatusValueAlreadySet returned.
func (t *Table) SetRecord(id int, rec ObjectPreferences) Status {
	if cur, ok := t.records[id]; ok {
		if cur.Equal(rec) {
			return StatusValueAlreadySet
		}
		*cur = rec
		return StatusSuccess
	}
	if t.records == nil {
		t.records = make(map[int]*ObjectPreferences)
	}
	t.records[id] = &rec
	return StatusSuccess
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	next := &Table{records: make(map[int]*ObjectPreferences, len(t.records))}
	for id, rec := range t.records {
		cp := *rec
		next.records[id] = &cp
	}
	return next
}

// Equal reports whether t and o hold the same identifiers with equal records.
func (t *Table) Equal(o *Table) bool {
	if t.Len() != o.Len() {
		return false
	}
	for id, rec := range t.records {
		other, ok := o.records[id]
		if !ok || !rec.Equal(*other) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the table as an object keyed by decimal identifier.
func (t *Table) MarshalJSON() ([]byte, error) {
	m := make(map[string]*ObjectPreferences, len(t.records))
	for id, rec := range t.records {
		m[strconv.Itoa(id)] = rec
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by canonical decimal identifier.
// Keys such as "01" or "+1" are rejected so no two keys name the same entry.
func (t *Table) UnmarshalJSON(data []byte) error {
	var m map[string]*ObjectPreferences
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	records := make(map[int]*ObjectPreferences, len(m))
	for key, rec := range m {
		id, err := strconv.Atoi(key)
		if err != nil || id < 0 || strconv.Itoa(id) != key {
			return models.InvalidArgument(fmt.Sprintf("invalid identifier key %q", key))
		}
		if rec == nil {
			rec = &ObjectPreferences{}
		}
		records[id] = rec
	}
	t.records = records
	return nil
}
