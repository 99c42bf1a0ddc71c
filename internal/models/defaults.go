package models

import "fmt"

// DefaultState returns the state of a freshly installed single-unit AmpliPi:
// six muted zones and no groups. Used by the mock live source.
func DefaultState() State {
	zones := make([]Zone, 6)
	for i := range zones {
		zones[i] = Zone{
			ID:       i,
			Name:     fmt.Sprintf("Zone %d", i+1),
			SourceID: 0,
			Mute:     true,
			Vol:      MinVolDB,
		}
	}

	return State{
		Zones:  zones,
		Groups: []Group{},
		Info: Info{
			Version:  "0.5.0-go",
			Hostname: "amplipi",
		},
	}
}
