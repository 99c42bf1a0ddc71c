package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micro-nova/amplipi-prefs/internal/config"
	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/sorting"
)

func TestLoadSettings(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		s, err := config.LoadSettings(config.SettingsPath(dir))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "house.json"), s.StatePath)
		assert.Equal(t, config.BackendJSON, s.Preferences.Backend)
		assert.Equal(t, dir, s.Preferences.Dir)
		assert.Equal(t, filepath.Join(dir, "sort.toml"), s.Sort.Path)
		assert.Equal(t, 250*time.Millisecond, s.Watch.MinInterval)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := config.SettingsPath(dir)
		data := `
state_path: /var/lib/amplipi/house.json
controller_id: serial-7
preferences:
  backend: sqlite
logging:
  level: debug
  format: json
watch:
  min_interval: 1s
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		s, err := config.LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/amplipi/house.json", s.StatePath)
		assert.Equal(t, "serial-7", s.ControllerID)
		assert.Equal(t, config.BackendSQLite, s.Preferences.Backend)
		assert.Equal(t, dir, s.Preferences.Dir)
		assert.Equal(t, "debug", s.Logging.Level)
		assert.Equal(t, "json", s.Logging.Format)
		assert.Equal(t, time.Second, s.Watch.MinInterval)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("AMPLIPI_PREFS_BACKEND", "memory")
		t.Setenv("AMPLIPI_PREFS_CONTROLLER_ID", "env-id")
		s, err := config.LoadSettings(config.SettingsPath(t.TempDir()))
		require.NoError(t, err)
		assert.Equal(t, config.BackendMemory, s.Preferences.Backend)
		assert.Equal(t, "env-id", s.ControllerID)

		store, err := s.OpenStore()
		require.NoError(t, err)
		assert.Equal(t, ":memory:", store.Path())
	})

	t.Run("invalid backend rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := config.SettingsPath(dir)
		require.NoError(t, os.WriteFile(path, []byte("preferences:\n  backend: redis\n"), 0644))
		_, err := config.LoadSettings(path)
		assert.Error(t, err)
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := config.SettingsPath(dir)
		require.NoError(t, os.WriteFile(path, []byte("state_path: [unterminated\n"), 0644))
		_, err := config.LoadSettings(path)
		assert.Error(t, err)
	})
}

func TestSortSettings(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		s, err := config.LoadSortSettings(filepath.Join(t.TempDir(), "sort.toml"))
		require.NoError(t, err)
		assert.Equal(t, sorting.DefaultCriteria().Items(), s.Groups.Items())
		assert.Equal(t, sorting.DefaultCriteria().Items(), s.For(models.KindZone).Items())
	})

	t.Run("missing collection keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sort.toml")
		data := `
[[zones]]
key = "last_used_date"
order = "descending"

[[zones]]
key = "identifier"
order = "ascending"
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		s, err := config.LoadSortSettings(path)
		require.NoError(t, err)
		assert.Equal(t, []sorting.Criterion{
			{Key: sorting.KeyLastUsedDate, Order: sorting.OrderDescending},
			{Key: sorting.KeyIdentifier, Order: sorting.OrderAscending},
		}, s.Zones.Items())
		assert.Equal(t, sorting.DefaultCriteria().Items(), s.Groups.Items())
	})

	t.Run("duplicate key rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sort.toml")
		data := `
[[groups]]
key = "name"
order = "ascending"

[[groups]]
key = "name"
order = "descending"
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		_, err := config.LoadSortSettings(path)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})

	t.Run("save and reload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "sort.toml")
		s := config.DefaultSortSettings()
		require.NoError(t, s.Groups.Add(sorting.KeyMute, sorting.OrderDescending))
		require.NoError(t, s.Zones.RemoveAt(0))
		require.NoError(t, s.Zones.RemoveAt(0))
		require.NoError(t, config.SaveSortSettings(path, s))

		got, err := config.LoadSortSettings(path)
		require.NoError(t, err)
		assert.Equal(t, s.Groups.Items(), got.Groups.Items())
		assert.Equal(t, 0, got.Zones.Count())
	})
}
