// Package backend assembles generated C++ translation units around the
// variable lowering in internal/codegen.
package backend

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kestrel-lang/kestrelc/internal/codegen"
	"github.com/kestrel-lang/kestrelc/internal/config"
	"github.com/kestrel-lang/kestrelc/internal/scope"
)

// GeneratedFile represents a generated C++ source file.
type GeneratedFile struct {
	// Filename is the relative path within the output directory.
	Filename string

	// Content is the full C++ source code.
	Content string
}

// FunctionUnit describes one function of a module as scope analysis
// classified it: its context flags and its variables.
type FunctionUnit struct {
	Name string

	NeedsCreation bool
	IsGenerator   bool
	HasLocalsDict bool

	// Parameters, Locals and Temps are declared at scope entry, in
	// order. Shared variables additionally become fields of the
	// function's context struct.
	Parameters []*scope.Variable
	Locals     []*scope.Variable
	Temps      []*scope.Variable

	// Accesses lists variables whose use sites appear in the function
	// body. Resolving them here registers module-level name usages the
	// same way expression generation would.
	Accesses []*scope.Variable
}

// ModuleUnit is one compiled source module.
type ModuleUnit struct {
	Name      string
	Functions []FunctionUnit
}

// Emitter produces translation units for module units.
type Emitter struct {
	buildID string
}

// NewEmitter creates an emitter. Every emitted file carries a fresh
// build ID so artifacts from different runs are distinguishable.
func NewEmitter() *Emitter {
	return &Emitter{buildID: uuid.NewString()}
}

// Name returns the backend name for display.
func (e *Emitter) Name() string { return "cpp" }

// EmitModule generates the translation unit for a module unit. Output is
// deterministic apart from the build ID: declarations follow unit order
// and constants follow first-use order.
func (e *Emitter) EmitModule(unit *ModuleUnit) (GeneratedFile, error) {
	if unit.Name == "" {
		return GeneratedFile{}, fmt.Errorf("emitting module: empty module name")
	}

	mctx := codegen.NewModuleContext(unit.Name)

	var body strings.Builder

	for i := range unit.Functions {
		fn := &unit.Functions[i]
		fctx := codegen.NewFunctionContext(mctx, fn.NeedsCreation, fn.IsGenerator)
		fctx.HasLocalsDict = fn.HasLocalsDict

		if fn.NeedsCreation {
			e.emitContextStruct(&body, mctx, unit.Name, fn)
		}

		e.emitEntryDeclarations(&body, mctx, unit.Name, fn)

		// Resolve body accesses so the module's name table is complete
		// before the preamble is rendered.
		for _, v := range fn.Accesses {
			codegen.VariableHandle(fctx, v)
		}
	}

	var out strings.Builder
	e.emitPreamble(&out, unit.Name)
	e.emitNameConstants(&out, mctx)
	e.emitStringConstants(&out, mctx)
	out.WriteString(body.String())

	return GeneratedFile{
		Filename: unit.Name + config.GeneratedFileExt,
		Content:  out.String(),
	}, nil
}

func (e *Emitter) emitPreamble(out *strings.Builder, moduleName string) {
	fmt.Fprintf(out, "/* Generated by %s %s (build %s) */\n", config.ToolName, config.ToolVersion, e.buildID)
	fmt.Fprintf(out, "/* Module: %s */\n\n", moduleName)
	out.WriteString("#include \"kestrel_runtime.hpp\"\n\n")
}

// emitContextStruct declares the captured-context object of a function:
// every shared variable becomes a field, declared without initializer
// since the values are installed when the context is instantiated.
func (e *Emitter) emitContextStruct(out *strings.Builder, mctx *codegen.ModuleContext, moduleName string, fn *FunctionUnit) {
	fmt.Fprintf(out, "struct %s_%s_context {\n", moduleName, fn.Name)
	if fn.IsGenerator {
		out.WriteString("\tstruct KestrelCommonContext *common_context;\n")
	}
	for _, v := range allDeclared(fn) {
		if !v.Shared {
			continue
		}
		fmt.Fprintf(out, "\t%s\n", codegen.DeclarationCode(mctx, v, nil, true))
	}
	out.WriteString("};\n\n")
}

// emitEntryDeclarations writes the one-time scope-entry declarations for
// a function's unshared storage.
func (e *Emitter) emitEntryDeclarations(out *strings.Builder, mctx *codegen.ModuleContext, moduleName string, fn *FunctionUnit) {
	fmt.Fprintf(out, "/* %s.%s: scope entry */\n", moduleName, fn.Name)
	for _, v := range allDeclared(fn) {
		if v.Shared || v.LateDeclaration {
			continue
		}
		fmt.Fprintf(out, "%s\n", codegen.DeclarationCode(mctx, v, nil, false))
	}
	out.WriteString("\n")
}

func (e *Emitter) emitNameConstants(out *strings.Builder, mctx *codegen.ModuleContext) {
	names := mctx.GlobalNameUsages()
	if len(names) == 0 {
		return
	}
	for _, name := range names {
		fmt.Fprintf(out, "static KestrelObject *%s; /* %q */\n",
			codegen.GlobalNameConstant(mctx.CodeName(), name), name)
	}
	out.WriteString("\n")
}

func (e *Emitter) emitStringConstants(out *strings.Builder, mctx *codegen.ModuleContext) {
	values := mctx.Constants().Values()
	if len(values) == 0 {
		return
	}
	for i, value := range values {
		fmt.Fprintf(out, "static KestrelObject *_kstr_%d; /* %q */\n", i, value)
	}
	out.WriteString("\n")
}

func allDeclared(fn *FunctionUnit) []*scope.Variable {
	vars := make([]*scope.Variable, 0, len(fn.Parameters)+len(fn.Locals)+len(fn.Temps))
	vars = append(vars, fn.Parameters...)
	vars = append(vars, fn.Locals...)
	vars = append(vars, fn.Temps...)
	return vars
}
