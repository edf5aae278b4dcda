package codegen

// AccessPath is the indirection needed to reach a variable's storage from
// the current generation position.
type AccessPath uint8

const (
	// PathDirect means the storage is reachable without indirection:
	// module-level storage or a plain stack slot of the current
	// activation.
	PathDirect AccessPath = iota

	// PathOwnContext routes through the current function's own
	// captured-context object.
	PathOwnContext

	// PathSharedContext routes through the common sub-object of a
	// generator's context, the part visible to every closure nested in
	// the generator.
	PathSharedContext
)

var accessPathNames = [...]string{
	PathDirect:        "direct",
	PathOwnContext:    "own-context",
	PathSharedContext: "shared-context",
}

func (p AccessPath) String() string { return accessPathNames[p] }

// Prefix renders the path as the C++ field-access chain preceding the
// variable's code name.
func (p AccessPath) Prefix() string {
	switch p {
	case PathOwnContext:
		return "_kestrel_context->"
	case PathSharedContext:
		return "_kestrel_context->common_context->"
	default:
		return ""
	}
}

// ResolveAccessPath decides how storage is reached from ctx. forceShared
// is set when the variable is additionally shared with nested closures
// and the access must land in storage those closures can see.
//
// Functions that are never captured and are not generators keep locals as
// plain stack storage. Functions that are captured or must survive
// suspension promote some or all locals into a heap context object;
// closures reaching into that object must distinguish the function's own
// frame-equivalent state from the sub-object shared with sibling
// closures.
func ResolveAccessPath(ctx Context, forceShared bool) AccessPath {
	fc, ok := ctx.(*FunctionContext)
	if !ok {
		// Module-level code never needs an access path.
		return PathDirect
	}

	if fc.NeedsCreation {
		if fc.IsGenerator {
			if forceShared {
				return PathSharedContext
			}
			return PathOwnContext
		}
		if forceShared {
			return PathOwnContext
		}
		return PathDirect
	}

	// Generator locals persist in the context object even when nothing
	// captures from the generator itself.
	if fc.IsGenerator {
		return PathOwnContext
	}
	return PathDirect
}
