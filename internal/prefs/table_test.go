package prefs

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

func sampleRecord(t *testing.T) ObjectPreferences {
	t.Helper()
	var rec ObjectPreferences
	rec.SetFavorite(true)
	_, err := rec.SetLastUsedDate(time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC))
	require.NoError(t, err)
	rec.SetUseCount(12)
	return rec
}

func TestObjectPreferences(t *testing.T) {
	t.Run("empty record fields are unset", func(t *testing.T) {
		var rec ObjectPreferences
		_, err := rec.Favorite()
		assert.ErrorIs(t, err, models.ErrNotInitialized)
		_, err = rec.LastUsedDate()
		assert.ErrorIs(t, err, models.ErrNotInitialized)
		_, err = rec.UseCount()
		assert.ErrorIs(t, err, models.ErrNotInitialized)
		assert.True(t, rec.IsEmpty())
	})

	t.Run("setters propagate status", func(t *testing.T) {
		var rec ObjectPreferences
		assert.Equal(t, StatusSuccess, rec.SetFavorite(true))
		assert.Equal(t, StatusValueAlreadySet, rec.SetFavorite(true))
		assert.Equal(t, StatusSuccess, rec.SetUseCount(3))
		assert.Equal(t, StatusValueAlreadySet, rec.SetUseCount(3))
		assert.Equal(t, uint64(4), rec.IncrementUseCount())
	})

	t.Run("init from folds already set", func(t *testing.T) {
		src := sampleRecord(t)
		dst := src
		require.NoError(t, dst.InitFrom(src))
		assert.True(t, dst.Equal(src))

		var blank ObjectPreferences
		require.NoError(t, dst.InitFrom(blank))
		assert.True(t, dst.IsEmpty())
	})

	t.Run("init clears", func(t *testing.T) {
		rec := sampleRecord(t)
		rec.Init()
		assert.True(t, rec.Equal(ObjectPreferences{}))
	})

	t.Run("equality is field-wise including unset", func(t *testing.T) {
		a := sampleRecord(t)
		b := sampleRecord(t)
		assert.True(t, a.Equal(b))

		b.useCount.Init()
		assert.False(t, a.Equal(b))
	})

	t.Run("json round trip keeps unset fields absent", func(t *testing.T) {
		var rec ObjectPreferences
		rec.SetFavorite(false)

		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.JSONEq(t, `{"favorite":false}`, string(data))

		var back ObjectPreferences
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, rec.Equal(back))
	})

	t.Run("zero date in document is invalid", func(t *testing.T) {
		var rec ObjectPreferences
		err := json.Unmarshal([]byte(`{"last_used_date":"0001-01-01T00:00:00Z"}`), &rec)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})
}

func TestTable(t *testing.T) {
	t.Run("lookup of absent id is not found and creates nothing", func(t *testing.T) {
		tbl := NewTable()
		_, err := tbl.Record(5)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.False(t, tbl.Has(5))
		assert.Zero(t, tbl.Len())
	})

	t.Run("set record twice", func(t *testing.T) {
		tbl := NewTable()
		rec := sampleRecord(t)
		assert.Equal(t, StatusSuccess, tbl.SetRecord(3, rec))
		assert.Equal(t, StatusValueAlreadySet, tbl.SetRecord(3, rec))
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("set record overwrites different value", func(t *testing.T) {
		tbl := NewTable()
		tbl.SetRecord(3, sampleRecord(t))
		assert.Equal(t, StatusSuccess, tbl.SetRecord(3, ObjectPreferences{}))
		got, err := tbl.Record(3)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})

	t.Run("present but empty is distinct from absent", func(t *testing.T) {
		tbl := NewTable()
		tbl.SetRecord(1, ObjectPreferences{})
		assert.True(t, tbl.Has(1))
		_, err := tbl.Record(1)
		assert.NoError(t, err)
	})

	t.Run("record pointer mutates in place", func(t *testing.T) {
		tbl := NewTable()
		tbl.SetRecord(2, ObjectPreferences{})
		rec, _ := tbl.Record(2)
		rec.SetFavorite(true)

		again, _ := tbl.Record(2)
		v, err := again.Favorite()
		require.NoError(t, err)
		assert.True(t, v)
	})

	t.Run("identifiers ascending", func(t *testing.T) {
		tbl := NewTable()
		for _, id := range []int{103, 0, 7, 100} {
			tbl.SetRecord(id, ObjectPreferences{})
		}
		assert.Equal(t, []int{0, 7, 100, 103}, tbl.Identifiers())
	})

	t.Run("clone is independent", func(t *testing.T) {
		tbl := NewTable()
		tbl.SetRecord(1, sampleRecord(t))
		cp := tbl.Clone()
		assert.True(t, cp.Equal(tbl))

		rec, _ := cp.Record(1)
		rec.Init()
		assert.False(t, cp.Equal(tbl))
	})

	t.Run("json round trip", func(t *testing.T) {
		tbl := NewTable()
		tbl.SetRecord(0, sampleRecord(t))
		tbl.SetRecord(4, ObjectPreferences{})
		var partial ObjectPreferences
		partial.SetUseCount(0)
		tbl.SetRecord(100, partial)

		data, err := json.Marshal(tbl)
		require.NoError(t, err)

		back := NewTable()
		require.NoError(t, json.Unmarshal(data, back))
		assert.True(t, back.Equal(tbl))
	})

	t.Run("non-numeric key is rejected", func(t *testing.T) {
		tbl := NewTable()
		err := json.Unmarshal([]byte(`{"kitchen":{}}`), tbl)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})

	t.Run("non-canonical keys are rejected", func(t *testing.T) {
		for _, doc := range []string{
			`{"1":{"favorite":true},"01":{"favorite":false},"+1":{"use_count":3}}`,
			`{"01":{}}`,
			`{"+1":{}}`,
			`{"-0":{}}`,
			`{" 1":{}}`,
		} {
			tbl := NewTable()
			err := json.Unmarshal([]byte(doc), tbl)
			assert.ErrorIs(t, err, models.ErrInvalidArgument, doc)
			assert.Equal(t, 0, tbl.Len(), doc)
		}
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var tbl Table
		var rec ObjectPreferences
		rec.SetFavorite(true)
		assert.Equal(t, StatusSuccess, tbl.SetRecord(4, rec))
		assert.Equal(t, StatusValueAlreadySet, tbl.SetRecord(4, rec))
		assert.True(t, tbl.Has(4))
		assert.Equal(t, 1, tbl.Clone().Len())
	})
}
