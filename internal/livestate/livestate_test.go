package livestate

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micro-nova/amplipi-prefs/internal/events"
	"github.com/micro-nova/amplipi-prefs/internal/models"
)

func writeState(t *testing.T, path string, st models.State) {
	t.Helper()
	data, err := json.Marshal(st)
	require.NoError(t, err)
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, data, 0644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestStatic(t *testing.T) {
	st := models.DefaultState()
	st.Info.MAC = "AA:BB:CC:DD:EE:FF"

	src := NewStatic(st, "")
	id, err := src.Identity()
	require.NoError(t, err)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", id)

	got, err := src.State()
	require.NoError(t, err)
	got.Zones[0].Name = "changed"
	again, _ := src.State()
	assert.Equal(t, "Zone 1", again.Zones[0].Name, "State must return a copy")

	override := NewStatic(st, " Mock-Controller ")
	id, err = override.Identity()
	require.NoError(t, err)
	assert.Equal(t, "mock-controller", id)

	_, err = NewStatic(models.DefaultState(), "").Identity()
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestFileSourceBeforeFirstRead(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "house.json"))
	_, err := src.State()
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = src.Identity()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestFileSourceReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.json")
	bus := events.NewBus()
	_, ch := bus.SubscribeNew()
	src := NewFileSource(path, WithBus(bus))

	t.Run("missing file publishes source lost", func(t *testing.T) {
		assert.Error(t, src.Reload())
		ev := <-ch
		assert.Equal(t, events.SourceLost, ev.Kind)
		assert.Error(t, ev.Err)
	})

	t.Run("good file publishes state", func(t *testing.T) {
		st := models.DefaultState()
		st.Info.Serial = "1234"
		writeState(t, path, st)

		require.NoError(t, src.Reload())
		ev := <-ch
		assert.Equal(t, events.StateChanged, ev.Kind)
		assert.Len(t, ev.State.Zones, 6)

		id, err := src.Identity()
		require.NoError(t, err)
		assert.Equal(t, "serial-1234", id)
	})

	t.Run("corrupt file keeps previous state", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
		assert.Error(t, src.Reload())
		<-ch

		st, err := src.State()
		require.NoError(t, err)
		assert.Len(t, st.Zones, 6)
	})
}

func TestFileSourceIdentityFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.json")
	writeState(t, path, models.DefaultState())

	src := NewFileSource(path)
	src.hostAddr = func() (string, error) { return "02:00:00:00:00:01", nil }
	require.NoError(t, src.Reload())

	id, err := src.Identity()
	require.NoError(t, err)
	assert.Equal(t, "02:00:00:00:00:01", id)

	src.hostAddr = func() (string, error) { return "", errors.New("no interfaces") }
	_, err = src.Identity()
	assert.Error(t, err)

	overridden := NewFileSource(path, WithIdentity("unit-7"))
	require.NoError(t, overridden.Reload())
	id, err = overridden.Identity()
	require.NoError(t, err)
	assert.Equal(t, "unit-7", id)
}

func TestFileSourceWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.json")
	writeState(t, path, models.DefaultState())

	bus := events.NewBus()
	_, ch := bus.SubscribeNew()
	src := NewFileSource(path, WithBus(bus), WithMinInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Start(ctx))

	first := <-ch
	require.Equal(t, events.StateChanged, first.Kind)

	st := models.DefaultState()
	st.Zones[2].Name = "Patio"
	writeState(t, path, st)

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Kind == events.StateChanged && ev.State.Zones[2].Name == "Patio" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload after file change")
		}
	}
}

func TestFileSourceRejectsOversizedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.json")
	st := models.State{}
	for i := 0; i <= models.MaxZones; i++ {
		st.Zones = append(st.Zones, models.Zone{ID: i})
	}
	writeState(t, path, st)

	src := NewFileSource(path)
	assert.ErrorIs(t, src.Reload(), models.ErrInvalidArgument)
	_, err := src.State()
	assert.ErrorIs(t, err, ErrNotConnected)
}
