// Package scope defines the classified variable bindings consumed by code
// generation. Scope analysis produces one Variable per binding and decides
// the kind, sharing and ownership flags up front; the backend treats these
// descriptors as immutable facts.
package scope

import "fmt"

// Kind classifies a variable binding. Exactly one kind holds per binding.
type Kind uint8

const (
	Parameter Kind = iota
	Local
	ClassVariable
	ClosureReference
	TempVariable
	MaybeLocal
	ModuleVariable
)

var kindNames = [...]string{
	Parameter:        "parameter",
	Local:            "local",
	ClassVariable:    "classvar",
	ClosureReference: "closure",
	TempVariable:     "tempvar",
	MaybeLocal:       "maybelocal",
	ModuleVariable:   "modulevar",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Variable is a classified binding. It is created once by scope analysis
// and never mutated afterwards.
type Variable struct {
	// Kind is the binding classification.
	Kind Kind

	// Name is the source-level identifier.
	Name string

	// CodeName is the collision-free identifier used in generated C++.
	CodeName string

	// MangledName is the key used when the variable is stored in a
	// dynamic (dict-based) namespace. Defaults to Name.
	MangledName string

	// Shared is true when the storage must be reachable from more than
	// one generated code region with overlapping lifetime (captured by a
	// closure that can outlive the defining call, or read by a generator
	// across suspensions).
	Shared bool

	// NeedsFree is true when the storage, once set, holds an owned
	// reference that must be released at scope exit.
	NeedsFree bool

	// LateDeclaration is true for temporaries whose storage is created
	// lazily at first use instead of scope entry.
	LateDeclaration bool

	// Referenced is the variable this one indirects to. Set for every
	// ClosureReference and for TempVariable aliases. Alias chains are at
	// most two levels deep.
	Referenced *Variable

	// DeclTypeCode is the C++ type expression used to declare the storage.
	DeclTypeCode string

	// DeclInitCode is the cheap default initializer used for temporaries
	// that never own a reference.
	DeclInitCode string
}

func (v *Variable) String() string {
	return fmt.Sprintf("<%s %q as %s>", v.Kind, v.Name, v.CodeName)
}

// IsClosureReference reports whether this binding reaches its storage
// through an enclosing function's captured context.
func (v *Variable) IsClosureReference() bool {
	return v.Kind == ClosureReference
}

// IsTempVariable reports whether this binding is a compiler temporary.
func (v *Variable) IsTempVariable() bool {
	return v.Kind == TempVariable
}

// RefersToTemp reports whether this binding is, or indirects to, a
// temporary. A ClosureReference may wrap a TempVariable; a TempVariable
// may alias another TempVariable.
func (v *Variable) RefersToTemp() bool {
	if v.Kind == TempVariable {
		return true
	}
	return v.Referenced != nil && v.Referenced.RefersToTemp()
}

// Target returns the variable a reference points at, or v itself when it
// is not a reference.
func (v *Variable) Target() *Variable {
	if v.Referenced != nil {
		return v.Referenced
	}
	return v
}

// SharedTarget reports whether the concrete variable at the end of the
// reference chain is shared. References inherit flags at construction
// time, so this follows the chain to the storage that actually decides.
func (v *Variable) SharedTarget() bool {
	target := v
	for target.Referenced != nil {
		target = target.Referenced
	}
	return target.Shared
}

// NewLocal returns a plain function-local binding.
func NewLocal(name, codeName string) *Variable {
	return &Variable{
		Kind:         Local,
		Name:         name,
		CodeName:     codeName,
		MangledName:  name,
		DeclTypeCode: "KestrelVariable",
	}
}

// NewParameter returns a parameter binding.
func NewParameter(name, codeName string) *Variable {
	return &Variable{
		Kind:         Parameter,
		Name:         name,
		CodeName:     codeName,
		MangledName:  name,
		DeclTypeCode: "KestrelVariable",
	}
}

// NewClassVariable returns a class-body binding.
func NewClassVariable(name, codeName string) *Variable {
	return &Variable{
		Kind:         ClassVariable,
		Name:         name,
		CodeName:     codeName,
		MangledName:  name,
		DeclTypeCode: "KestrelVariable",
	}
}

// NewModuleVariable returns a module-namespace binding.
func NewModuleVariable(name string) *Variable {
	return &Variable{
		Kind:        ModuleVariable,
		Name:        name,
		MangledName: name,
	}
}

// NewMaybeLocal returns a binding that may live in the owning function's
// dynamic local namespace, falling back to the module namespace. Only
// functions with dict-based locals produce these.
func NewMaybeLocal(name string) *Variable {
	return &Variable{
		Kind:        MaybeLocal,
		Name:        name,
		MangledName: name,
	}
}

// NewTemp returns a compiler temporary.
func NewTemp(name, codeName string) *Variable {
	return &Variable{
		Kind:         TempVariable,
		Name:         name,
		CodeName:     codeName,
		MangledName:  name,
		DeclTypeCode: "KestrelObject *",
		DeclInitCode: "NULL",
	}
}

// NewTempReference returns a temporary that aliases another temporary.
// Chains of such aliases are bounded at two levels; code generation
// rejects deeper chains.
func NewTempReference(referenced *Variable) *Variable {
	if referenced == nil {
		panic("scope: temp reference without referent")
	}
	return &Variable{
		Kind:         TempVariable,
		Name:         referenced.Name,
		CodeName:     referenced.CodeName,
		MangledName:  referenced.MangledName,
		Referenced:   referenced,
		DeclTypeCode: referenced.DeclTypeCode,
		DeclInitCode: referenced.DeclInitCode,
	}
}

// NewClosureReference returns a binding that accesses referenced through
// the captured context of an enclosing function.
func NewClosureReference(referenced *Variable) *Variable {
	if referenced == nil {
		panic("scope: closure reference without referent")
	}
	return &Variable{
		Kind:         ClosureReference,
		Name:         referenced.Name,
		CodeName:     referenced.CodeName,
		MangledName:  referenced.MangledName,
		Shared:       referenced.Shared,
		NeedsFree:    referenced.NeedsFree,
		Referenced:   referenced,
		DeclTypeCode: referenced.DeclTypeCode,
		DeclInitCode: referenced.DeclInitCode,
	}
}
