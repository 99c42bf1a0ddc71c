package prefs

import "github.com/micro-nova/amplipi-prefs/internal/models"

// optional is a tagged value that is either absent or holds a payload. The
// payload of an absent value is always the zero value and never returned.
type optional[T any] struct {
	present bool
	value   T
}

func (o *optional[T]) reset() {
	*o = optional[T]{}
}

func (o optional[T]) lookup() (T, bool) {
	return o.value, o.present
}

func (o optional[T]) get() (T, error) {
	if !o.present {
		var zero T
		return zero, models.ErrNotInitialized
	}
	return o.value, nil
}

func (o *optional[T]) store(v T, eq func(a, b T) bool) Status {
	if o.present && eq(o.value, v) {
		return StatusValueAlreadySet
	}
	o.value = v
	o.present = true
	return StatusSuccess
}

func (o optional[T]) equal(p optional[T], eq func(a, b T) bool) bool {
	if o.present != p.present {
		return false
	}
	return !o.present || eq(o.value, p.value)
}

func same[T comparable](a, b T) bool { return a == b }
