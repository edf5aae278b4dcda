package backend

import (
	"strings"
	"testing"

	"github.com/kestrel-lang/kestrelc/internal/scope"
)

func testUnit() *ModuleUnit {
	counter := scope.NewLocal("counter", "var_counter")
	counter.Shared = true

	limit := scope.NewParameter("limit", "par_limit")
	tmp := scope.NewTemp("iter", "tmp_iter")

	return &ModuleUnit{
		Name: "main",
		Functions: []FunctionUnit{
			{
				Name:          "ticker",
				NeedsCreation: true,
				IsGenerator:   true,
				Parameters:    []*scope.Variable{limit},
				Locals:        []*scope.Variable{counter},
				Temps:         []*scope.Variable{tmp},
				Accesses: []*scope.Variable{
					scope.NewModuleVariable("step"),
					scope.NewModuleVariable("step"),
				},
			},
		},
	}
}

func TestEmitModule(t *testing.T) {
	file, err := NewEmitter().EmitModule(testUnit())
	if err != nil {
		t.Fatalf("EmitModule failed: %v", err)
	}

	if file.Filename != "main.cpp" {
		t.Errorf("filename: got %q, want main.cpp", file.Filename)
	}

	checks := []string{
		// Generator context struct carries the common sub-object and the
		// shared local as an uninitialized field.
		"struct main_ticker_context {",
		"struct KestrelCommonContext *common_context;",
		"KestrelVariable var_counter;",
		// Unshared storage is declared at scope entry.
		"KestrelVariable par_limit( _kstr_0 );",
		"KestrelObject *tmp_iter = NULL;",
		// The accessed module variable produced a single name constant.
		"static KestrelObject *_kname_main_step;",
	}
	for _, want := range checks {
		if !strings.Contains(file.Content, want) {
			t.Errorf("output missing %q\n%s", want, file.Content)
		}
	}

	if n := strings.Count(file.Content, "_kname_main_step;"); n != 1 {
		t.Errorf("name constant emitted %d times, want 1", n)
	}
}

func TestEmitModuleDeterministic(t *testing.T) {
	e := NewEmitter()

	first, err := e.EmitModule(testUnit())
	if err != nil {
		t.Fatalf("first emit failed: %v", err)
	}
	second, err := e.EmitModule(testUnit())
	if err != nil {
		t.Fatalf("second emit failed: %v", err)
	}

	if first.Content != second.Content {
		t.Errorf("same emitter produced differing output")
	}
}

func TestEmitModuleRequiresName(t *testing.T) {
	if _, err := NewEmitter().EmitModule(&ModuleUnit{}); err == nil {
		t.Errorf("expected error for empty module name")
	}
}
