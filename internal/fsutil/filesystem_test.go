package fsutil

import (
	"errors"
	"io/fs"
	"testing"
)

func TestMemoryFileSystemReadWrite(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := m.WriteFile("data/session.json", []byte(`{"ok":true}`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := m.ReadFile("data/session.json")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected contents: %s", data)
	}
}

func TestMemoryFileSystemReadMissing(t *testing.T) {
	m := NewMemoryFileSystem()

	_, err := m.ReadFile("nope.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystemWriteCount(t *testing.T) {
	m := NewMemoryFileSystem()

	for i := 0; i < 3; i++ {
		if err := m.WriteFile("data/session.json", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile %d failed: %v", i, err)
		}
	}
	if got := m.Writes("data/session.json"); got != 3 {
		t.Errorf("Writes = %d, want 3", got)
	}
	if got := m.Writes("other.json"); got != 0 {
		t.Errorf("Writes for unwritten file = %d, want 0", got)
	}
}

func TestMemoryFileSystemWriteErrs(t *testing.T) {
	m := NewMemoryFileSystem()
	boom := errors.New("disk full")
	m.WriteErrs = []error{boom, nil}

	if err := m.WriteFile("a", nil, 0o644); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if err := m.WriteFile("a", []byte("ok"), 0o644); err != nil {
		t.Fatalf("second WriteFile failed: %v", err)
	}
	if got := m.Writes("a"); got != 1 {
		t.Errorf("failed writes must not count: Writes = %d, want 1", got)
	}
}

func TestMemoryFileSystemMkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := m.MkdirAll("a/b/c", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, dir := range []string{"a", "a/b", "a/b/c"} {
		if !m.Exists(dir) {
			t.Errorf("directory %q should exist", dir)
		}
	}
	if m.Exists("a/b/c/d") {
		t.Error("directory a/b/c/d should not exist")
	}
}

func TestOSFileSystem(t *testing.T) {
	osfs := OSFileSystem{}
	dir := t.TempDir()

	if err := osfs.MkdirAll(dir+"/data", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	path := dir + "/data/session.json"
	if err := osfs.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !osfs.Exists(path) {
		t.Error("written file should exist")
	}

	data, err := osfs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("unexpected contents: %s", data)
	}
}
