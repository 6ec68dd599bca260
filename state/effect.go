package state

// Effect is a typed side-channel signal carried by a transaction, orthogonal
// to text changes. Effects are created and inspected through an EffectType.
type Effect struct {
	typ   *effectKind
	value any
}

type effectKind struct{ name string }

// Type returns the effect's type name, for diagnostics.
func (e Effect) Type() string {
	if e.typ == nil {
		return ""
	}
	return e.typ.name
}

// EffectType declares a kind of effect carrying a T payload. Identity is the
// declaration itself: two types with the same name are still distinct.
type EffectType[T any] struct {
	kind *effectKind
}

func NewEffectType[T any](name string) EffectType[T] {
	return EffectType[T]{kind: &effectKind{name: name}}
}

// Of wraps a value into an Effect of this type.
func (et EffectType[T]) Of(v T) Effect {
	return Effect{typ: et.kind, value: v}
}

// Is reports whether e was created by this type.
func (et EffectType[T]) Is(e Effect) bool { return e.typ == et.kind }

// Get extracts the payload if e belongs to this type.
func (et EffectType[T]) Get(e Effect) (T, bool) {
	if e.typ != et.kind {
		var zero T
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}
