package extfunc

import "fmt"

// LinkageError reports a failed resolution of an operator name: the native
// module could not be loaded or the required symbol could not be bound.
// It is fatal to the enclosing graph construction or evaluation and is
// never retried.
type LinkageError struct {
	Name   string // operator name being resolved
	Module string // module path attempted, if any
	Symbol string // symbol name attempted, if any
	Err    error  // underlying cause
}

// Error implements the error interface.
func (e *LinkageError) Error() string {
	if e.Module != "" {
		return fmt.Sprintf("extfunc: cannot bind operator %q (module %q, symbol %q): %v",
			e.Name, e.Module, e.Symbol, e.Err)
	}
	return fmt.Sprintf("extfunc: cannot bind operator %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LinkageError) Unwrap() error {
	return e.Err
}
