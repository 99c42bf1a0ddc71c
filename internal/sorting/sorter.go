package sorting

import (
	"fmt"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

// Source supplies the current attributes of every entity to be sorted.
type Source interface {
	Snapshot() ([]Attributes, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() ([]Attributes, error)

func (f SourceFunc) Snapshot() ([]Attributes, error) { return f() }

// Sorter holds the sorted output of a criteria list over a source and maps
// between identifiers and their row index in that output.
//
// The output only changes when SortIdentifiers is called; callers re-sort
// after editing the criteria or when the source's attributes change.
type Sorter struct {
	criteria *Criteria
	source   Source
	sorted   []Attributes
	index    map[int]int
}

// NewSorter returns a Sorter with empty output.
func NewSorter(criteria *Criteria, source Source) *Sorter {
	if criteria == nil {
		criteria = &Criteria{}
	}
	return &Sorter{
		criteria: criteria,
		source:   source,
		index:    make(map[int]int),
	}
}

// Criteria returns the live criteria list; edits take effect on the next sort.
func (s *Sorter) Criteria() *Criteria { return s.criteria }

// SetSource replaces the attribute source.
func (s *Sorter) SetSource(src Source) { s.source = src }

// SortIdentifiers takes a fresh snapshot from the source and sorts it. On
// error the previous output is kept.
func (s *Sorter) SortIdentifiers() error {
	if s.source == nil {
		return models.ErrBindingRequired
	}
	attrs, err := s.source.Snapshot()
	if err != nil {
		return fmt.Errorf("sorting: snapshot: %w", err)
	}

	index := make(map[int]int, len(attrs))
	for _, a := range attrs {
		if _, dup := index[a.ID]; dup {
			return models.InvalidArgument(fmt.Sprintf("duplicate identifier %d in snapshot", a.ID))
		}
		index[a.ID] = 0
	}

	Sort(s.criteria, attrs)
	for i, a := range attrs {
		index[a.ID] = i
	}
	s.sorted = attrs
	s.index = index
	return nil
}

// Count returns the number of sorted entities.
func (s *Sorter) Count() int { return len(s.sorted) }

// Identifiers returns the sorted identifiers.
func (s *Sorter) Identifiers() []int {
	ids := make([]int, len(s.sorted))
	for i, a := range s.sorted {
		ids[i] = a.ID
	}
	return ids
}

// Sorted returns a copy of the sorted attribute snapshot.
func (s *Sorter) Sorted() []Attributes {
	out := make([]Attributes, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// MapIndexToIdentifier returns the identifier at row i of the sorted output.
func (s *Sorter) MapIndexToIdentifier(i int) (int, error) {
	if i < 0 || i >= len(s.sorted) {
		return 0, models.InvalidArgument(fmt.Sprintf("index %d out of range [0,%d)", i, len(s.sorted)))
	}
	return s.sorted[i].ID, nil
}

// MapIdentifierToIndex returns the row of id in the sorted output.
func (s *Sorter) MapIdentifierToIndex(id int) (int, error) {
	i, ok := s.index[id]
	if !ok {
		return 0, models.NotFound(fmt.Sprintf("identifier %d not in sorted output", id))
	}
	return i, nil
}
