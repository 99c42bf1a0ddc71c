// Package config persists client preferences and loads client settings.
//
// Preferences are kept as a document keyed first by controller identity, then
// by collection ("groups" or "zones"), then by decimal entity identifier. A
// Store reads and writes one controller's subtree at a time.
package config

import (
	"fmt"

	"github.com/micro-nova/amplipi-prefs/internal/models"
	"github.com/micro-nova/amplipi-prefs/internal/prefs"
)

// Collection keys of a controller's preferences.
const (
	GroupsKey = "groups"
	ZonesKey  = "zones"
)

// ControllerPreferences holds the preference tables of one controller.
type ControllerPreferences struct {
	Groups *prefs.Table `json:"groups,omitempty"`
	Zones  *prefs.Table `json:"zones,omitempty"`
}

// NewControllerPreferences returns empty tables.
func NewControllerPreferences() *ControllerPreferences {
	return &ControllerPreferences{
		Groups: prefs.NewTable(),
		Zones:  prefs.NewTable(),
	}
}

// Table returns the table for kind.
func (p *ControllerPreferences) Table(kind models.EntityKind) *prefs.Table {
	if kind == models.KindGroup {
		return p.Groups
	}
	return p.Zones
}

// Clone returns a deep copy.
func (p *ControllerPreferences) Clone() *ControllerPreferences {
	next := NewControllerPreferences()
	if p.Groups != nil {
		next.Groups = p.Groups.Clone()
	}
	if p.Zones != nil {
		next.Zones = p.Zones.Clone()
	}
	return next
}

// fill replaces missing tables with empty ones.
func (p *ControllerPreferences) fill() {
	if p.Groups == nil {
		p.Groups = prefs.NewTable()
	}
	if p.Zones == nil {
		p.Zones = prefs.NewTable()
	}
}

// Document is the full persisted preferences tree.
type Document map[string]*ControllerPreferences

// Store is the interface for persisting preferences.
type Store interface {
	// Load returns the preferences stored for controllerID. A controller with
	// nothing stored yields empty tables, not an error.
	Load(controllerID string) (*ControllerPreferences, error)

	// Save persists the preferences for controllerID. Implementations may
	// debounce rapid saves.
	Save(controllerID string, p *ControllerPreferences) error

	// Path returns the location used by this store.
	Path() string

	// Flush forces an immediate write of any pending save.
	Flush() error

	// Close flushes and releases resources.
	Close() error
}

func checkControllerID(id string) error {
	if id == "" {
		return models.InvalidArgument("controller identity is empty")
	}
	return nil
}

func checkSave(id string, p *ControllerPreferences) error {
	if err := checkControllerID(id); err != nil {
		return err
	}
	if p == nil {
		return models.InvalidArgument(fmt.Sprintf("nil preferences for controller %s", id))
	}
	return nil
}
