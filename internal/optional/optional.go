// Package optional models a field of a partial update: it is either absent
// (leave the stored value alone), explicitly null (clear it) or set.
package optional

type state uint8

const (
	absent state = iota
	null
	set
)

// Value is a tri-state field. The zero value is absent.
type Value[T any] struct {
	state state
	value T
}

// Of returns a set value.
func Of[T any](v T) Value[T] {
	return Value[T]{state: set, value: v}
}

// Null returns an explicitly cleared value.
func Null[T any]() Value[T] {
	return Value[T]{state: null}
}

// FromPtr maps nil to Null and anything else to Of(*p).
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Null[T]()
	}
	return Of(*p)
}

// IsSet reports whether the field carries a value.
func (v Value[T]) IsSet() bool { return v.state == set }

// IsNull reports whether the field was explicitly cleared.
func (v Value[T]) IsNull() bool { return v.state == null }

// IsPresent reports whether the field was supplied at all, set or null.
func (v Value[T]) IsPresent() bool { return v.state != absent }

// Get returns the value and whether it is set.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.state == set
}

// OrElse returns the value when set, fallback otherwise.
func (v Value[T]) OrElse(fallback T) T {
	if v.state == set {
		return v.value
	}
	return fallback
}

// Ptr returns a pointer to a copy of the value, or nil when not set.
func (v Value[T]) Ptr() *T {
	if v.state != set {
		return nil
	}
	out := v.value
	return &out
}
