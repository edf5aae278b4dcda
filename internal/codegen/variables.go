package codegen

import (
	"fmt"
	"strings"

	"github.com/kestrel-lang/kestrelc/internal/scope"
)

// maxTempAliasDepth bounds temp alias chains. Scope analysis never
// produces deeper chains; anything beyond this is a classification bug
// upstream and is rejected rather than silently truncated.
const maxTempAliasDepth = 2

// VariableHandle maps a classified variable to the access handle for one
// use site at the given generation position. It panics when the
// descriptor matches none of the classified kinds, since that means
// scope analysis produced an invalid binding and generated code would be
// unsafe.
func VariableHandle(ctx Context, variable *scope.Variable) Identifier {
	switch {
	case variable.Kind == scope.Parameter,
		variable.Kind == scope.Local,
		variable.Kind == scope.ClassVariable,
		variable.IsClosureReference() && !variable.RefersToTemp():

		// Closure references must reach storage the defining function
		// promoted to its context object; everything else stays on the
		// fast direct path unless the context itself forces promotion.
		path := ResolveAccessPath(ctx, variable.IsClosureReference())
		code := path.Prefix() + variable.CodeName

		var hint string
		switch {
		case variable.Kind == scope.Parameter:
			hint = "parameter"
		case variable.Kind == scope.ClassVariable:
			hint = "classvar"
		case variable.IsClosureReference():
			hint = "closure"
		default:
			hint = "localvar"
		}

		// Ownership stays with the declared storage, so plain access is
		// always borrowed.
		return NewNameIdentifier(hint, variable.Name, code, 0)

	case variable.IsClosureReference() && variable.SharedTarget():
		// A temp shared between a generator and its nested closures is
		// reached through the common sub-object.
		path := ResolveAccessPath(ctx, true)
		target := resolveTempAlias(variable)
		return NewNameIdentifier("tempvar", variable.Name, path.Prefix()+target.CodeName, 0)

	case variable.RefersToTemp():
		target := resolveTempAlias(variable)

		var path AccessPath
		if target.LateDeclaration {
			// Lazily declared temps live where they were declared, not
			// behind the captured-context path.
			path = PathDirect
		} else {
			path = ResolveAccessPath(ctx, target.Shared)
		}
		code := path.Prefix() + target.CodeName

		if target.Shared {
			return NewNameIdentifier("tempvar", variable.Name, code, 0)
		}
		if !target.NeedsFree {
			// Never owns a reference: accesses carry no release
			// obligation, which lets users skip refcount bookkeeping.
			return NewTempObjectIdentifier(variable.Name, code)
		}
		return NewNameIdentifier("tempvar", variable.Name, code, 0)

	case variable.Kind == scope.MaybeLocal:
		module := ctx.Module()
		module.AddGlobalNameUsage(variable.Name)

		fc, ok := ctx.(*FunctionContext)
		if !ok || !fc.HasLocalsDict {
			panic(fmt.Sprintf("codegen: maybe-local %s outside a locals-dict function", variable))
		}

		return NewMaybeModuleVariableIdentifier(variable.Name, module.CodeName())

	case variable.Kind == scope.ModuleVariable:
		module := ctx.Module()
		module.AddGlobalNameUsage(variable.Name)

		return NewModuleVariableIdentifier(variable.Name, module.CodeName())

	default:
		panic(fmt.Sprintf("codegen: unclassified variable %s", variable))
	}
}

// resolveTempAlias follows a temp alias chain to the concrete temporary.
func resolveTempAlias(variable *scope.Variable) *scope.Variable {
	target := variable
	for i := 0; i < maxTempAliasDepth; i++ {
		if target.Referenced == nil {
			return target
		}
		target = target.Referenced
	}
	if target.Referenced != nil {
		panic(fmt.Sprintf("codegen: temp alias chain deeper than %d at %s", maxTempAliasDepth, variable))
	}
	return target
}

// VariableCode returns just the access expression for a use site.
func VariableCode(ctx Context, variable *scope.Variable) string {
	return VariableHandle(ctx, variable).Code()
}

// DeclarationCode produces the storage declaration for a variable at its
// point of definition. initFrom optionally supplies the initial owned
// reference handed to the new storage; it is not permitted for
// temporaries. inContext marks a field declaration inside a
// captured-context struct, where the initializer is applied later when
// the context object is instantiated.
//
// Module variables are declared once during module-namespace setup and
// never through this path.
func DeclarationCode(ctx Context, variable *scope.Variable, initFrom Identifier, inContext bool) string {
	if variable.Kind == scope.ModuleVariable {
		panic(fmt.Sprintf("codegen: declaration requested for module variable %s", variable))
	}

	result := variable.DeclTypeCode

	// Pointer types concatenate without a separating space.
	if !strings.HasSuffix(result, "*") {
		result += " "
	}

	result += variable.CodeName

	if !inContext {
		if variable.IsTempVariable() {
			if initFrom != nil {
				panic(fmt.Sprintf("codegen: init value supplied for temporary %s", variable))
			}

			if variable.Shared {
				// Shared temps start empty and are boxed on first use.
				result += "( NULL )"
			} else if !variable.NeedsFree {
				result += " = " + variable.DeclInitCode
			}
			// Owned temps are declared bare: an unconditional default
			// would demand an unconditional release or be wrong.
		} else {
			// Namespace-compatible cells always exist keyed by their
			// mangled name, even when unused, so dynamic lookups can
			// enumerate them.
			result += "( " + ConstantCode(ctx, variable.MangledName)

			if initFrom != nil {
				result += ", " + initFrom.ExportRefCode()
			}

			result += " )"
		}
	}

	result += ";"

	return result
}
