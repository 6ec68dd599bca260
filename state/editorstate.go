package state

// Config describes a new editor state: initial text, optional initial
// selection, and the fields and interceptors threaded through every
// transaction. Fields and interceptors are fixed for the state's lifetime.
type Config struct {
	Doc          string
	Selection    *Selection
	Fields       []*Field
	Interceptors []Interceptor
}

type sharedConfig struct {
	fields       []*Field
	interceptors []Interceptor
}

// EditorState is the immutable aggregate of document, selection, and field
// values. States are only created by NewState or by applying a transaction.
type EditorState struct {
	doc    *Document
	sel    Selection
	shared *sharedConfig
	values []any
}

func NewState(cfg Config) *EditorState {
	doc := NewDocument(cfg.Doc)
	sel := Cursor(0)
	if cfg.Selection != nil {
		sel = (*cfg.Selection).clamp(doc)
	}
	s := &EditorState{
		doc: doc,
		sel: sel,
		shared: &sharedConfig{
			fields:       cfg.Fields,
			interceptors: cfg.Interceptors,
		},
		values: make([]any, len(cfg.Fields)),
	}
	for i, f := range cfg.Fields {
		s.values[i] = f.create(s)
	}
	return s
}

func (s *EditorState) Doc() *Document { return s.doc }

func (s *EditorState) Selection() Selection { return s.sel }

// Field returns the current value of a registered field.
func (s *EditorState) Field(f *Field) (any, bool) {
	for i, reg := range s.shared.fields {
		if reg == f {
			return s.values[i], true
		}
	}
	return nil, false
}

// Update resolves the given specs into a single transaction: changes are
// combined against the current document, the last explicit selection wins,
// effects and events concatenate. Interceptors run after changes and
// selection are resolved and may append effects to the same transaction.
func (s *EditorState) Update(specs ...TransactionSpec) *Transaction {
	var (
		rawChanges []Change
		selection  *Selection
		effects    []Effect
		events     []string
		scroll     bool
	)
	for _, spec := range specs {
		rawChanges = append(rawChanges, spec.Changes...)
		if spec.Selection != nil {
			sel := *spec.Selection
			selection = &sel
		}
		effects = append(effects, spec.Effects...)
		events = append(events, spec.Events...)
		scroll = scroll || spec.ScrollIntoView
	}

	tx := &Transaction{
		Start:          s,
		Changes:        NewChangeSet(s.doc, rawChanges...),
		Effects:        effects,
		Events:         events,
		ScrollIntoView: scroll,
		selection:      selection,
	}
	tx.resolve()

	for _, ic := range s.shared.interceptors {
		if extra := ic(tx); len(extra) > 0 {
			tx.Effects = append(tx.Effects, extra...)
		}
	}
	return tx
}
