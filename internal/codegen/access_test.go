package codegen

import "testing"

func TestResolveAccessPathModule(t *testing.T) {
	mctx := NewModuleContext("main")

	for _, forceShared := range []bool{false, true} {
		if got := ResolveAccessPath(mctx, forceShared); got != PathDirect {
			t.Errorf("module context, forceShared=%v: got %s, want direct", forceShared, got)
		}
	}
}

func TestResolveAccessPathFunction(t *testing.T) {
	tests := []struct {
		needsCreation bool
		isGenerator   bool
		forceShared   bool
		want          AccessPath
	}{
		{true, true, true, PathSharedContext},
		{true, true, false, PathOwnContext},
		{true, false, true, PathOwnContext},
		{true, false, false, PathDirect},
		{false, true, true, PathOwnContext},
		{false, true, false, PathOwnContext},
		{false, false, true, PathDirect},
		{false, false, false, PathDirect},
	}

	mctx := NewModuleContext("main")
	for _, tt := range tests {
		fctx := NewFunctionContext(mctx, tt.needsCreation, tt.isGenerator)
		got := ResolveAccessPath(fctx, tt.forceShared)
		if got != tt.want {
			t.Errorf("needsCreation=%v isGenerator=%v forceShared=%v: got %s, want %s",
				tt.needsCreation, tt.isGenerator, tt.forceShared, got, tt.want)
		}
	}
}

func TestAccessPathPrefix(t *testing.T) {
	tests := []struct {
		path AccessPath
		want string
	}{
		{PathDirect, ""},
		{PathOwnContext, "_kestrel_context->"},
		{PathSharedContext, "_kestrel_context->common_context->"},
	}

	for _, tt := range tests {
		if got := tt.path.Prefix(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.path, got, tt.want)
		}
	}
}
