// Package livestate supplies the controller's live zone and group state,
// either fixed or read from the AmpliPi daemon's house.json.
package livestate

import (
	"errors"

	"github.com/micro-nova/amplipi-prefs/internal/identity"
	"github.com/micro-nova/amplipi-prefs/internal/models"
)

// ErrNotConnected is returned before a source has produced any state.
var ErrNotConnected = errors.New("livestate: not connected")

// Source is the live system state of one controller.
type Source interface {
	// State returns a snapshot of the current state.
	State() (models.State, error)
	// Identity returns the normalized controller identity.
	Identity() (string, error)
}

// Static is a Source with a fixed state.
type Static struct {
	state models.State
	id    string
}

// NewStatic returns a source that always reports state. An empty id derives
// the identity from state.Info.
func NewStatic(state models.State, id string) *Static {
	return &Static{state: state.DeepCopy(), id: id}
}

func (s *Static) State() (models.State, error) {
	return s.state.DeepCopy(), nil
}

func (s *Static) Identity() (string, error) {
	return resolveIdentity(s.id, s.state.Info, nil)
}

// resolveIdentity picks the override, then the info-derived identity, then
// the fallback when one is given.
func resolveIdentity(override string, info models.Info, fallback func() (string, error)) (string, error) {
	if id := identity.Normalize(override); id != "" {
		return id, nil
	}
	id, err := identity.FromInfo(info)
	if err == nil || fallback == nil {
		return id, err
	}
	return fallback()
}

var (
	_ Source = (*Static)(nil)
	_ Source = (*FileSource)(nil)
)
