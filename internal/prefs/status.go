// Package prefs holds per-entity user preference state: the favorite flag,
// the last-used date and the use count, each of which may be unset.
//
// Writes report a Status rather than an error. StatusValueAlreadySet means the
// write was a no-op because the stored value already matched; callers that
// only care whether the value is now correct treat it as success, callers that
// want to avoid redundant persistence check Changed.
package prefs

// Status is the outcome of a preference write.
type Status int

const (
	// StatusSuccess means the value was newly set or changed.
	StatusSuccess Status = iota

	// StatusValueAlreadySet means the value already matched and nothing changed.
	StatusValueAlreadySet
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusValueAlreadySet:
		return "value already set"
	default:
		return "unknown"
	}
}

// Changed reports whether the write modified stored state.
func (s Status) Changed() bool { return s == StatusSuccess }
