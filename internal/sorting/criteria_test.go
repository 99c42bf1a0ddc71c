package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

func keysOf(c *Criteria) []Key {
	var keys []Key
	for _, it := range c.Items() {
		keys = append(keys, it.Key)
	}
	return keys
}

func TestNewCriteria(t *testing.T) {
	t.Run("keeps priority order", func(t *testing.T) {
		c, err := NewCriteria(
			Criterion{KeyName, OrderAscending},
			Criterion{KeyMute, OrderDescending},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Count())
		assert.Equal(t, []Key{KeyName, KeyMute}, keysOf(c))
	})

	t.Run("rejects duplicate key", func(t *testing.T) {
		_, err := NewCriteria(
			Criterion{KeyName, OrderAscending},
			Criterion{KeyName, OrderDescending},
		)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})

	t.Run("rejects invalid key", func(t *testing.T) {
		_, err := NewCriteria(Criterion{Key(42), OrderAscending})
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})
}

func TestCriteriaAccessors(t *testing.T) {
	c, err := NewCriteria(
		Criterion{KeyFavorite, OrderDescending},
		Criterion{KeyName, OrderAscending},
	)
	require.NoError(t, err)

	assert.True(t, c.HasKey(KeyFavorite))
	assert.False(t, c.HasKey(KeyMute))

	k, err := c.KeyAt(1)
	require.NoError(t, err)
	assert.Equal(t, KeyName, k)

	o, err := c.OrderAt(0)
	require.NoError(t, err)
	assert.Equal(t, OrderDescending, o)

	o, err = c.OrderFor(KeyName)
	require.NoError(t, err)
	assert.Equal(t, OrderAscending, o)

	_, err = c.OrderFor(KeyMute)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = c.KeyAt(2)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	_, err = c.OrderAt(-1)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	assert.Equal(t, []Key{KeyIdentifier, KeyLastUsedDate, KeyMute}, c.AvailableKeys())
}

func TestCriteriaMutation(t *testing.T) {
	newList := func(t *testing.T) *Criteria {
		c, err := NewCriteria(
			Criterion{KeyFavorite, OrderDescending},
			Criterion{KeyLastUsedDate, OrderDescending},
			Criterion{KeyName, OrderAscending},
		)
		require.NoError(t, err)
		return c
	}

	t.Run("remove shifts priorities up", func(t *testing.T) {
		c := newList(t)
		require.NoError(t, c.RemoveAt(0))
		assert.Equal(t, []Key{KeyLastUsedDate, KeyName}, keysOf(c))
	})

	t.Run("remove out of range", func(t *testing.T) {
		c := newList(t)
		assert.ErrorIs(t, c.RemoveAt(3), models.ErrInvalidArgument)
		assert.Equal(t, 3, c.Count())
	})

	t.Run("add duplicate fails", func(t *testing.T) {
		c := newList(t)
		assert.ErrorIs(t, c.Add(KeyName, OrderDescending), models.ErrInvalidArgument)
	})

	t.Run("insert at front", func(t *testing.T) {
		c := newList(t)
		require.NoError(t, c.Insert(0, KeyMute, OrderAscending))
		assert.Equal(t, []Key{KeyMute, KeyFavorite, KeyLastUsedDate, KeyName}, keysOf(c))
		assert.ErrorIs(t, c.Insert(9, KeyIdentifier, OrderAscending), models.ErrInvalidArgument)
	})

	t.Run("move down and up", func(t *testing.T) {
		c := newList(t)
		require.NoError(t, c.Move(0, 2))
		assert.Equal(t, []Key{KeyLastUsedDate, KeyName, KeyFavorite}, keysOf(c))
		require.NoError(t, c.Move(2, 0))
		assert.Equal(t, []Key{KeyFavorite, KeyLastUsedDate, KeyName}, keysOf(c))
		assert.ErrorIs(t, c.Move(0, 3), models.ErrInvalidArgument)
	})

	t.Run("set order", func(t *testing.T) {
		c := newList(t)
		require.NoError(t, c.SetOrderAt(2, OrderDescending))
		o, _ := c.OrderFor(KeyName)
		assert.Equal(t, OrderDescending, o)
	})

	t.Run("clone is independent", func(t *testing.T) {
		c := newList(t)
		cp := c.Clone()
		require.NoError(t, cp.RemoveAt(0))
		assert.Equal(t, 3, c.Count())
	})
}

func TestParseAndDescribe(t *testing.T) {
	for _, k := range AllKeys() {
		got, err := ParseKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Label())
		assert.NotEqual(t, Describe(k, OrderAscending), Describe(k, OrderDescending))
	}

	k, err := ParseKey(" Last_Used_Date ")
	require.NoError(t, err)
	assert.Equal(t, KeyLastUsedDate, k)

	_, err = ParseKey("volume")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	o, err := ParseOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, OrderDescending, o)
	assert.Equal(t, OrderAscending, o.Reverse())

	assert.Equal(t, "A to Z", Describe(KeyName, OrderAscending))

	var back Order
	require.NoError(t, back.UnmarshalText([]byte("ascending")))
	assert.Equal(t, OrderAscending, back)
}
