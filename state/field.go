package state

// Field is a named piece of state threaded through every transaction: given
// the previous value and the transaction, Update produces the next value.
// Field declarations are immutable; values live on the EditorState.
type Field struct {
	name   string
	create func(*EditorState) any
	update func(value any, tx *Transaction) any
}

func NewField(name string, create func(*EditorState) any, update func(any, *Transaction) any) *Field {
	return &Field{name: name, create: create, update: update}
}

func (f *Field) Name() string { return f.name }

// Interceptor is consulted while a transaction is being resolved, after
// changes and selection are known but before fields update. Returned effects
// are appended to the same transaction.
type Interceptor func(tx *Transaction) []Effect
