package extfunc

import (
	"errors"
	"sync"
)

// ErrUnknownOperator indicates a lookup for a name the loader cannot serve.
var ErrUnknownOperator = errors.New("unknown operator")

// Loader binds an operator name to an entry point. Implementations must be
// safe for concurrent use; the Registry serializes first-use loads per
// name, but distinct names may load concurrently.
type Loader interface {
	Load(name string) (Operator, error)
}

// StaticLoader serves operators from a built-in table populated by
// Register. It is the loader of choice for operators compiled into the
// binary, and the test seam for everything above it.
type StaticLoader struct {
	mu    sync.RWMutex
	table map[string]Operator
}

// NewStaticLoader creates an empty static operator table.
func NewStaticLoader() *StaticLoader {
	return &StaticLoader{table: make(map[string]Operator)}
}

// Register adds an operator under the given name, replacing any previous
// registration. Registrations made after a Registry has resolved the name
// have no effect on that registry (resolution is permanent).
func (l *StaticLoader) Register(name string, op Operator) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.table[name] = op
}

// RegisterFunc adds a plain function under the given name.
func (l *StaticLoader) RegisterFunc(name string, fn TensorFunc) {
	l.Register(name, OperatorFunc(fn))
}

// Load returns the operator registered under name.
func (l *StaticLoader) Load(name string) (Operator, error) {
	l.mu.RLock()
	op, ok := l.table[name]
	l.mu.RUnlock()
	if !ok {
		return nil, &LinkageError{Name: name, Err: ErrUnknownOperator}
	}
	return op, nil
}
