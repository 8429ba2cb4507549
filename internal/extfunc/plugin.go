package extfunc

import (
	"fmt"
	"path/filepath"
	"plugin"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Default patterns for deriving module file and symbol names from an
// operator name. The derivation is a deployment convention, configurable
// per loader.
const (
	DefaultModulePattern = "%s.so"
	DefaultSymbolPattern = "%s"
)

// PluginLoader binds operator names to symbols in shared modules built
// with -buildmode=plugin. The module file name and symbol name are derived
// from the operator name via printf-style patterns, so new operators are
// added by dropping a module into Dir rather than recompiling the engine.
//
// The bound symbol must have type func(*tensor.View); any other type is a
// bind failure.
type PluginLoader struct {
	// Dir is the directory searched for operator modules.
	Dir string

	// ModulePattern derives the module file name from the operator name,
	// e.g. "%s.so" or "lib%s.so". Empty means DefaultModulePattern.
	ModulePattern string

	// SymbolPattern derives the symbol name from the operator name.
	// Empty means DefaultSymbolPattern.
	SymbolPattern string
}

// Load opens the module derived from name and binds the derived symbol.
func (l *PluginLoader) Load(name string) (Operator, error) {
	modulePattern := l.ModulePattern
	if modulePattern == "" {
		modulePattern = DefaultModulePattern
	}
	symbolPattern := l.SymbolPattern
	if symbolPattern == "" {
		symbolPattern = DefaultSymbolPattern
	}
	module := filepath.Join(l.Dir, fmt.Sprintf(modulePattern, name))
	symbol := fmt.Sprintf(symbolPattern, name)

	p, err := plugin.Open(module)
	if err != nil {
		return nil, &LinkageError{Name: name, Module: module, Symbol: symbol,
			Err: fmt.Errorf("open module: %w", err)}
	}
	sym, err := p.Lookup(symbol)
	if err != nil {
		return nil, &LinkageError{Name: name, Module: module, Symbol: symbol,
			Err: fmt.Errorf("bind symbol: %w", err)}
	}
	fn, ok := sym.(func(*tensor.View))
	if !ok {
		return nil, &LinkageError{Name: name, Module: module, Symbol: symbol,
			Err: fmt.Errorf("symbol has type %T, want func(*tensor.View)", sym)}
	}
	return OperatorFunc(fn), nil
}
