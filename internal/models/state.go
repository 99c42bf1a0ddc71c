// Package models defines the AmpliPi system types the preferences engine reads.
// JSON field names match the AmpliPi daemon's house.json so that file can be
// decoded directly; fields the engine never reads are left out.
package models

// Zone represents one of up to 36 amplified outputs.
type Zone struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	SourceID int    `json:"source_id"`
	Mute     bool   `json:"mute"`
	Vol      int    `json:"vol"`
	Disabled bool   `json:"disabled"` // hardware not present
}

// Group is a named collection of zones controlled together.
type Group struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	ZoneIDs []int  `json:"zones"`
	Mute    *bool  `json:"mute,omitempty"` // nil when member zones disagree
}

// Muted reports the group's aggregate mute flag, treating a mixed group as unmuted.
func (g Group) Muted() bool {
	return g.Mute != nil && *g.Mute
}

// Info identifies the controller that produced a State.
type Info struct {
	Version  string `json:"version"`
	UnitID   int    `json:"unit_id,omitempty"`
	Hostname string `json:"hostname,omitempty"`
	Serial   string `json:"serial,omitempty"`
	MAC      string `json:"mac,omitempty"`
}

// State is the subset of the AmpliPi system state used for sorting and
// identifier validation.
type State struct {
	Zones  []Zone  `json:"zones"`
	Groups []Group `json:"groups"`
	Info   Info    `json:"info"`
}

// DeepCopy returns a deep copy of the state.
func (s State) DeepCopy() State {
	next := State{
		Info: s.Info,
	}

	next.Zones = make([]Zone, len(s.Zones))
	copy(next.Zones, s.Zones)

	next.Groups = make([]Group, len(s.Groups))
	for i, g := range s.Groups {
		ng := g
		if g.ZoneIDs != nil {
			ng.ZoneIDs = make([]int, len(g.ZoneIDs))
			copy(ng.ZoneIDs, g.ZoneIDs)
		}
		if g.Mute != nil {
			v := *g.Mute
			ng.Mute = &v
		}
		next.Groups[i] = ng
	}

	return next
}

// FindZone returns a pointer to the zone with the given ID, or nil.
func (s *State) FindZone(id int) *Zone {
	for i := range s.Zones {
		if s.Zones[i].ID == id {
			return &s.Zones[i]
		}
	}
	return nil
}

// FindGroup returns a pointer to the group with the given ID, or nil.
func (s *State) FindGroup(id int) *Group {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// Constants for zone limits.
const (
	// MaxZones is the most zones one controller with expansion units drives.
	MaxZones = 36

	MinVolDB = -80
)
