package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	a := fs.AddVirtual("a.src", []byte("aaa"))
	b := fs.AddVirtual("b.src", []byte("bbb"))

	if a == b {
		t.Fatalf("expected distinct IDs, got %d twice", a)
	}
	if got := fs.Get(a).Path; got != "a.src" {
		t.Fatalf("expected path a.src, got %q", got)
	}
	if got := string(fs.Get(b).Content); got != "bbb" {
		t.Fatalf("expected content bbb, got %q", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "script.src")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("one\r\ntwo\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	f := fs.Get(id)
	if string(f.Content) != "one\ntwo\n" {
		t.Fatalf("expected normalized content, got %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Fatalf("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected FileNormalizedCRLF flag")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.src", []byte("ab\ncd\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // the newline itself
		{3, LineCol{Line: 2, Col: 1}},
		{5, LineCol{Line: 2, Col: 3}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Errorf("offset %d: expected %+v, got %+v", tc.off, tc.want, start)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.src", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1: got %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3: got %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4: expected empty, got %q", got)
	}
	if got := f.GetLine(0); got != "" {
		t.Fatalf("line 0: expected empty, got %q", got)
	}
}

func TestGetByPathNormalizesPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("dir/./script.src", []byte("x"))

	if _, ok := fs.GetByPath("dir/script.src"); !ok {
		t.Fatalf("expected normalized path lookup to succeed")
	}
}
