package diagnostics

import (
	"os"
	"path/filepath"
	"testing"
)

func capture(t *testing.T, emit func(p *Printer)) string {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "diag.out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	emit(NewPrinter(f))

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name string
		emit func(p *Printer)
		want string
	}{
		{"info", func(p *Printer) { p.Infof("emitting %s", "main") }, "info: emitting main\n"},
		{"warning", func(p *Printer) { p.Warnf("cache %s", "stale") }, "warning: cache stale\n"},
		{"error", func(p *Printer) { p.Errorf("bad %s", "config") }, "error: bad config\n"},
		{"internal", func(p *Printer) { p.Internalf("alias chain at %s", "tmp_x") }, "internal error: alias chain at tmp_x\n"},
	}

	for _, tt := range tests {
		if got := capture(t, tt.emit); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNoColorOnPlainFile(t *testing.T) {
	got := capture(t, func(p *Printer) { p.Errorf("plain") })
	if got != "error: plain\n" {
		t.Errorf("non-terminal output carries escapes: %q", got)
	}
}
