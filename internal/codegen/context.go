// Package codegen lowers classified variable bindings to C++ storage: it
// decides where each variable lives, how the current generation position
// reaches it (possibly through captured-context objects), and how its
// storage is declared and initialized, including reference-count
// bookkeeping.
package codegen

import "fmt"

// Context is the position code is currently being generated from: either
// a module body or a function body.
type Context interface {
	// Module returns the module compilation context, which owns the
	// global-name usage table and the constant pool.
	Module() *ModuleContext
}

// ModuleContext is the per-module compilation context. It is the only
// mutable state in this package: the handle builder registers module and
// maybe-local name usages here so the module can emit a de-duplicated
// name-constant table.
type ModuleContext struct {
	codeName string

	constants *ConstantPool

	globalNames []string
	globalSeen  map[string]bool
}

// NewModuleContext creates the compilation context for a module whose
// generated symbols are prefixed with codeName.
func NewModuleContext(codeName string) *ModuleContext {
	return &ModuleContext{
		codeName:   codeName,
		constants:  NewConstantPool(),
		globalSeen: make(map[string]bool),
	}
}

func (m *ModuleContext) Module() *ModuleContext { return m }

// CodeName returns the module's generated-code name.
func (m *ModuleContext) CodeName() string { return m.codeName }

// Constants returns the module's constant pool.
func (m *ModuleContext) Constants() *ConstantPool { return m.constants }

// AddGlobalNameUsage records that generated code looks up name in the
// module namespace. Registration is idempotent: repeated uses of the
// same name keep a single entry.
func (m *ModuleContext) AddGlobalNameUsage(name string) {
	if m.globalSeen[name] {
		return
	}
	m.globalSeen[name] = true
	m.globalNames = append(m.globalNames, name)
}

// GlobalNameUsages returns the registered names in first-use order.
func (m *ModuleContext) GlobalNameUsages() []string {
	names := make([]string, len(m.globalNames))
	copy(names, m.globalNames)
	return names
}

// FunctionContext is the generation position inside a function body.
type FunctionContext struct {
	module *ModuleContext

	// NeedsCreation is true when the function has its own heap-allocated
	// captured-context object, because something captures from it or it
	// is a generator whose frame outlives a single activation.
	NeedsCreation bool

	// IsGenerator is true when the function's local state persists
	// across suspension points and lives in a context object shared
	// between resumptions.
	IsGenerator bool

	// HasLocalsDict is true when the function keeps its locals in a
	// dynamic dict-based namespace. MaybeLocal variables require this.
	HasLocalsDict bool
}

// NewFunctionContext creates a generation context for a function inside
// module.
func NewFunctionContext(module *ModuleContext, needsCreation, isGenerator bool) *FunctionContext {
	return &FunctionContext{
		module:        module,
		NeedsCreation: needsCreation,
		IsGenerator:   isGenerator,
	}
}

func (f *FunctionContext) Module() *ModuleContext {
	if f.module == nil {
		panic(fmt.Sprintf("codegen: function context %+v has no module", f))
	}
	return f.module
}
