package codegen

import "fmt"

// Identifier is an access handle for one use site of a variable. Handles
// are constructed fresh per access and never cached.
type Identifier interface {
	// Name returns the source-level variable name.
	Name() string

	// Code returns the C++ expression that reads the storage. The result
	// is a borrowed reference unless RefCount says otherwise.
	Code() string

	// RefCount is the reference-count obligation of Code: 0 means the
	// access yields a borrowed reference the caller must not release.
	RefCount() int

	// ExportRefCode returns a C++ expression whose value carries an owned
	// reference, suitable for transferring ownership into new storage.
	ExportRefCode() string
}

// NameIdentifier is a directly named storage location: a stack slot, a
// captured-context field, or a dict cell. Hint records what kind of
// storage it is for disassembly and tracing output.
type NameIdentifier struct {
	hint     string
	name     string
	code     string
	refCount int
}

// NewNameIdentifier creates a handle for directly named storage.
func NewNameIdentifier(hint, name, code string, refCount int) *NameIdentifier {
	return &NameIdentifier{hint: hint, name: name, code: code, refCount: refCount}
}

func (i *NameIdentifier) Hint() string  { return i.hint }
func (i *NameIdentifier) Name() string  { return i.name }
func (i *NameIdentifier) Code() string  { return i.code }
func (i *NameIdentifier) RefCount() int { return i.refCount }

func (i *NameIdentifier) ExportRefCode() string {
	if i.refCount > 0 {
		return i.code
	}
	return fmt.Sprintf("INCREASE_REFCOUNT( %s )", i.code)
}

func (i *NameIdentifier) String() string {
	return fmt.Sprintf("<%s %s: %s>", i.hint, i.name, i.code)
}

// TempObjectIdentifier is a named temporary known to never hold an owned
// reference, so accesses carry no release obligation at all.
type TempObjectIdentifier struct {
	name string
	code string
}

// NewTempObjectIdentifier creates a handle for an unshared temporary that
// never owns a reference.
func NewTempObjectIdentifier(name, code string) *TempObjectIdentifier {
	return &TempObjectIdentifier{name: name, code: code}
}

func (i *TempObjectIdentifier) Name() string  { return i.name }
func (i *TempObjectIdentifier) Code() string  { return i.code }
func (i *TempObjectIdentifier) RefCount() int { return 0 }

func (i *TempObjectIdentifier) ExportRefCode() string {
	return fmt.Sprintf("INCREASE_REFCOUNT( %s )", i.code)
}

func (i *TempObjectIdentifier) String() string {
	return fmt.Sprintf("<tempobject %s: %s>", i.name, i.code)
}

// ModuleVariableIdentifier accesses a named slot of a module namespace.
type ModuleVariableIdentifier struct {
	name           string
	moduleCodeName string
}

// NewModuleVariableIdentifier creates a handle for a module-namespace
// variable.
func NewModuleVariableIdentifier(name, moduleCodeName string) *ModuleVariableIdentifier {
	return &ModuleVariableIdentifier{name: name, moduleCodeName: moduleCodeName}
}

func (i *ModuleVariableIdentifier) Name() string { return i.name }

func (i *ModuleVariableIdentifier) Code() string {
	return fmt.Sprintf(
		"LOOKUP_MODULE_VARIABLE( %s_module, %s )",
		i.moduleCodeName,
		GlobalNameConstant(i.moduleCodeName, i.name),
	)
}

func (i *ModuleVariableIdentifier) RefCount() int { return 0 }

func (i *ModuleVariableIdentifier) ExportRefCode() string {
	return fmt.Sprintf("INCREASE_REFCOUNT( %s )", i.Code())
}

func (i *ModuleVariableIdentifier) String() string {
	return fmt.Sprintf("<modulevar %s.%s>", i.moduleCodeName, i.name)
}

// MaybeModuleVariableIdentifier accesses a variable that is looked up in
// the function's dynamic local namespace first, falling back to the
// module namespace when absent.
type MaybeModuleVariableIdentifier struct {
	name           string
	moduleCodeName string
}

// NewMaybeModuleVariableIdentifier creates a handle for a locals-dict
// lookup with module fallback.
func NewMaybeModuleVariableIdentifier(name, moduleCodeName string) *MaybeModuleVariableIdentifier {
	return &MaybeModuleVariableIdentifier{name: name, moduleCodeName: moduleCodeName}
}

func (i *MaybeModuleVariableIdentifier) Name() string { return i.name }

func (i *MaybeModuleVariableIdentifier) Code() string {
	return fmt.Sprintf(
		"LOOKUP_MAYBE_LOCAL_VARIABLE( locals_dict, %s_module, %s )",
		i.moduleCodeName,
		GlobalNameConstant(i.moduleCodeName, i.name),
	)
}

func (i *MaybeModuleVariableIdentifier) RefCount() int { return 0 }

func (i *MaybeModuleVariableIdentifier) ExportRefCode() string {
	return fmt.Sprintf("INCREASE_REFCOUNT( %s )", i.Code())
}

func (i *MaybeModuleVariableIdentifier) String() string {
	return fmt.Sprintf("<maybelocal %s.%s>", i.moduleCodeName, i.name)
}
