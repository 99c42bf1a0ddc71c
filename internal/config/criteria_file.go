package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/sorting"
)

// SortSettings holds the sort criteria for each collection.
type SortSettings struct {
	Groups *sorting.Criteria
	Zones  *sorting.Criteria
}

// DefaultSortSettings returns the default criteria for both collections.
func DefaultSortSettings() *SortSettings {
	return &SortSettings{
		Groups: sorting.DefaultCriteria(),
		Zones:  sorting.DefaultCriteria(),
	}
}

// For returns the criteria for kind.
func (s *SortSettings) For(kind models.EntityKind) *sorting.Criteria {
	if kind == models.KindGroup {
		return s.Groups
	}
	return s.Zones
}

// sortFile is the TOML layout. Pointers distinguish a missing collection,
// which keeps its defaults, from an empty one.
type sortFile struct {
	Groups *[]sorting.Criterion `toml:"groups"`
	Zones  *[]sorting.Criterion `toml:"zones"`
}

// LoadSortSettings reads the criteria file at path. A missing file, or a
// missing collection within it, yields the default criteria.
func LoadSortSettings(path string) (*SortSettings, error) {
	s := DefaultSortSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading sort file: %w", err)
	}

	var f sortFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sort file: %w", err)
	}
	if f.Groups != nil {
		if s.Groups, err = sorting.NewCriteria(*f.Groups...); err != nil {
			return nil, fmt.Errorf("sort file groups: %w", err)
		}
	}
	if f.Zones != nil {
		if s.Zones, err = sorting.NewCriteria(*f.Zones...); err != nil {
			return nil, fmt.Errorf("sort file zones: %w", err)
		}
	}
	return s, nil
}

// SaveSortSettings writes s to path atomically.
func SaveSortSettings(path string, s *SortSettings) error {
	groups := s.Groups.Items()
	zones := s.Zones.Items()
	f := sortFile{Groups: &groups, Zones: &zones}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("encoding sort file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
