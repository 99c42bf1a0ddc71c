package sorting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

func staticSource(attrs ...Attributes) Source {
	return SourceFunc(func() ([]Attributes, error) {
		out := make([]Attributes, len(attrs))
		copy(out, attrs)
		return out, nil
	})
}

func TestSorter(t *testing.T) {
	src := staticSource(
		Attributes{ID: 5, Name: "Patio"},
		Attributes{ID: 0, Name: "Kitchen"},
		Attributes{ID: 2, Name: "Den"},
	)
	c, _ := NewCriteria(Criterion{KeyName, OrderAscending})
	s := NewSorter(c, src)

	assert.Zero(t, s.Count())
	require.NoError(t, s.SortIdentifiers())
	assert.Equal(t, []int{2, 0, 5}, s.Identifiers())

	id, err := s.MapIndexToIdentifier(1)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	idx, err := s.MapIdentifierToIndex(5)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = s.MapIndexToIdentifier(3)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = s.MapIdentifierToIndex(7)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSorter_NotReactiveUntilResorted(t *testing.T) {
	s := NewSorter(DefaultCriteria(), staticSource(
		Attributes{ID: 1, Name: "B"},
		Attributes{ID: 2, Name: "A"},
	))
	require.NoError(t, s.SortIdentifiers())
	assert.Equal(t, []int{2, 1}, s.Identifiers())

	require.NoError(t, s.Criteria().SetOrderAt(1, OrderDescending))
	assert.Equal(t, []int{2, 1}, s.Identifiers())

	require.NoError(t, s.SortIdentifiers())
	assert.Equal(t, []int{1, 2}, s.Identifiers())
}

func TestSorter_RepeatedSortIsStable(t *testing.T) {
	s := NewSorter(&Criteria{}, staticSource(
		Attributes{ID: 3}, Attributes{ID: 1}, Attributes{ID: 2},
	))
	require.NoError(t, s.SortIdentifiers())
	first := s.Identifiers()
	require.NoError(t, s.SortIdentifiers())
	assert.Equal(t, first, s.Identifiers())
}

func TestSorter_Errors(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		s := NewSorter(nil, nil)
		assert.ErrorIs(t, s.SortIdentifiers(), models.ErrBindingRequired)
	})

	t.Run("snapshot failure keeps previous output", func(t *testing.T) {
		s := NewSorter(nil, staticSource(Attributes{ID: 1}))
		require.NoError(t, s.SortIdentifiers())

		boom := errors.New("boom")
		s.SetSource(SourceFunc(func() ([]Attributes, error) { return nil, boom }))
		assert.ErrorIs(t, s.SortIdentifiers(), boom)
		assert.Equal(t, []int{1}, s.Identifiers())
	})

	t.Run("duplicate identifiers rejected", func(t *testing.T) {
		s := NewSorter(nil, staticSource(Attributes{ID: 1}, Attributes{ID: 1}))
		assert.ErrorIs(t, s.SortIdentifiers(), models.ErrInvalidArgument)
	})
}
