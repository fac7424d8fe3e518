package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestIndex builds an index over a small synthetic tree.
func newTestIndex(t *testing.T) *Index {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"main.go":          "package main\n\nfunc main() {\n\trun()\n}\n",
		"auth/auth.go":     "package auth\n\nfunc Login() error {\n\treturn nil\n}\n",
		"auth/token.py":    "def validate_token(tok):\n    return True\n",
		"docs/readme.md":   "# readme\nLogin flow documented here.\n",
		".git/config":      "[core]\n",
		"vendor_notes.txt": "nothing to see\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	ix, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ix
}

func TestReadFile(t *testing.T) {
	ix := newTestIndex(t)

	content, err := ix.ReadFile("main.go", 0, 0)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(content.Content, "func main()") {
		t.Errorf("unexpected content: %q", content.Content)
	}
	if content.TotalLines != 5 {
		t.Errorf("expected 5 total lines, got %d", content.TotalLines)
	}
	if content.Truncated {
		t.Error("expected full read, got truncated")
	}
}

func TestReadFileWindow(t *testing.T) {
	ix := newTestIndex(t)

	content, err := ix.ReadFile("main.go", 2, 3)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content.LinesRead != 2 {
		t.Errorf("expected 2 lines, got %d", content.LinesRead)
	}
	if content.StartLine != 3 {
		t.Errorf("expected start line 3, got %d", content.StartLine)
	}
	if !strings.HasPrefix(content.Content, "func main()") {
		t.Errorf("unexpected window content: %q", content.Content)
	}
	if !content.Truncated {
		t.Error("expected truncated window")
	}
}

func TestReadFileMissing(t *testing.T) {
	ix := newTestIndex(t)

	if _, err := ix.ReadFile("nope.go", 0, 0); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPathOutsideRootRejected(t *testing.T) {
	ix := newTestIndex(t)

	if _, err := ix.ReadFile("../../etc/passwd", 0, 0); err == nil {
		t.Error("expected error for path escaping the root")
	}
	if _, err := ix.ListDir(".."); err == nil {
		t.Error("expected error for directory outside root")
	}
}

func TestFindFiles(t *testing.T) {
	ix := newTestIndex(t)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"bare filename matches any depth", "*.go", []string{"auth/auth.go", "main.go"}},
		{"double star", "**/*.py", []string{"auth/token.py"}},
		{"directory scoped", "auth/*.go", []string{"auth/auth.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ix.FindFiles(tt.pattern, 10)
			if err != nil {
				t.Fatalf("FindFiles failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if filepath.ToSlash(got[i]) != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestFindFilesSkipsHiddenDirs(t *testing.T) {
	ix := newTestIndex(t)

	got, err := ix.FindFiles("*", 100)
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	for _, path := range got {
		if strings.Contains(path, ".git") {
			t.Errorf("hidden directory leaked into results: %s", path)
		}
	}
}

func TestSearchCode(t *testing.T) {
	ix := newTestIndex(t)

	matches, err := ix.SearchCode("Login", "*", 10)
	if err != nil {
		t.Fatalf("SearchCode failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(matches), matches)
	}

	matches, err = ix.SearchCode("Login", "go", 10)
	if err != nil {
		t.Fatalf("SearchCode failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 go match, got %d", len(matches))
	}
	if filepath.ToSlash(matches[0].Path) != "auth/auth.go" || matches[0].Line != 3 {
		t.Errorf("unexpected match: %+v", matches[0])
	}
}

func TestSearchCodeEmptyKeyword(t *testing.T) {
	ix := newTestIndex(t)

	if _, err := ix.SearchCode("", "*", 10); err == nil {
		t.Error("expected error for empty keyword")
	}
}

func TestFindByExt(t *testing.T) {
	ix := newTestIndex(t)

	got, err := ix.FindByExt("go,py", 10)
	if err != nil {
		t.Fatalf("FindByExt failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 files, got %v", got)
	}

	if _, err := ix.FindByExt("", 10); err == nil {
		t.Error("expected error for empty extension list")
	}
}

func TestListDir(t *testing.T) {
	ix := newTestIndex(t)

	listing, err := ix.ListDir(".")
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}
	// Hidden entries are reported for the root listing; only walks skip them.
	foundAuth := false
	for _, d := range listing.Dirs {
		if d == "auth" {
			foundAuth = true
		}
	}
	if !foundAuth {
		t.Errorf("expected auth dir in %v", listing.Dirs)
	}
	foundMain := false
	for _, f := range listing.Files {
		if f == "main.go" {
			foundMain = true
		}
	}
	if !foundMain {
		t.Errorf("expected main.go in %v", listing.Files)
	}
}

func TestFileInfo(t *testing.T) {
	ix := newTestIndex(t)

	info, err := ix.FileInfo("main.go")
	if err != nil {
		t.Fatalf("FileInfo failed: %v", err)
	}
	if info.Lines != 5 {
		t.Errorf("expected 5 lines, got %d", info.Lines)
	}
	if info.Extension != "go" {
		t.Errorf("expected extension go, got %q", info.Extension)
	}
	if info.SizeBytes == 0 {
		t.Error("expected non-zero size")
	}

	if _, err := ix.FileInfo("auth"); err == nil {
		t.Error("expected error for directory path")
	}
}

func TestNewRejectsMissingRoot(t *testing.T) {
	if _, err := New("/path/that/does/not/exist"); err == nil {
		t.Error("expected error for missing root")
	}
}
