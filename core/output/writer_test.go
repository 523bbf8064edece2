package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWrite_Stream(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	for _, path := range []string{"", "-"} {
		buf.Reset()
		got, err := w.Write(path, []byte("# Doc\n"), ".md")
		if err != nil {
			t.Fatalf("Write(%q) error = %v", path, err)
		}
		if got != "-" || buf.String() != "# Doc\n" {
			t.Errorf("Write(%q) = %q, stream %q", path, got, buf.String())
		}
	}
}

func TestWrite_File(t *testing.T) {
	dir := t.TempDir()
	w := New(&bytes.Buffer{})

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(dir, "guide"), filepath.Join(dir, "guide.mdc")},
		{filepath.Join(dir, "guide.md"), filepath.Join(dir, "guide.md")},
		{filepath.Join(dir, "nested", "deep", "page"), filepath.Join(dir, "nested", "deep", "page.mdc")},
	}
	for _, tt := range tests {
		got, err := w.Write(tt.path, []byte("body"), ".mdc")
		if err != nil {
			t.Fatalf("Write(%q) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("Write(%q) = %q, want %q", tt.path, got, tt.want)
		}
		data, err := os.ReadFile(got)
		if err != nil || string(data) != "body" {
			t.Errorf("unexpected file content %q (%v)", data, err)
		}
	}
}
