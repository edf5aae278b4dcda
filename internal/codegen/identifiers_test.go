package codegen

import "testing"

func TestNameIdentifierExportRef(t *testing.T) {
	borrowed := NewNameIdentifier("localvar", "x", "var_x", 0)
	if got := borrowed.ExportRefCode(); got != "INCREASE_REFCOUNT( var_x )" {
		t.Errorf("borrowed export: got %q", got)
	}

	owned := NewNameIdentifier("tempvar", "x", "tmp_x", 1)
	if got := owned.ExportRefCode(); got != "tmp_x" {
		t.Errorf("owned export: got %q", got)
	}
}

func TestTempObjectIdentifier(t *testing.T) {
	id := NewTempObjectIdentifier("t", "tmp_t")

	if id.RefCount() != 0 {
		t.Errorf("ref count: got %d, want 0", id.RefCount())
	}
	if id.Code() != "tmp_t" {
		t.Errorf("code: got %q", id.Code())
	}
	if got := id.ExportRefCode(); got != "INCREASE_REFCOUNT( tmp_t )" {
		t.Errorf("export: got %q", got)
	}
}

func TestModuleVariableIdentifierCode(t *testing.T) {
	id := NewModuleVariableIdentifier("value", "pkg")
	want := "LOOKUP_MODULE_VARIABLE( pkg_module, _kname_pkg_value )"
	if id.Code() != want {
		t.Errorf("code: got %q, want %q", id.Code(), want)
	}

	maybe := NewMaybeModuleVariableIdentifier("value", "pkg")
	want = "LOOKUP_MAYBE_LOCAL_VARIABLE( locals_dict, pkg_module, _kname_pkg_value )"
	if maybe.Code() != want {
		t.Errorf("maybe code: got %q, want %q", maybe.Code(), want)
	}
}
