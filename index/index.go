// Package index provides read-only code queries against a root directory.
//
// All operations are synchronous, stateless, and fail with descriptive
// errors rather than panicking. Paths are validated against the configured
// root; anything outside it is rejected.
//
// Information Hiding:
// - Directory walking and glob matching hidden
// - Path containment checks hidden
package index

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// DefaultMaxResults bounds list-style query results.
	DefaultMaxResults = 20
	// DefaultReadLines bounds read_file output.
	DefaultReadLines = 500
	// maxSearchFileSize skips files too large to scan line by line.
	maxSearchFileSize = 4 * 1024 * 1024
)

// Index answers read-only queries against a code directory.
type Index struct {
	root string
}

// New creates an index rooted at dir. The directory must exist.
func New(dir string) (*Index, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid root directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("root directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", dir)
	}
	return &Index{root: abs}, nil
}

// Root returns the absolute root directory.
func (ix *Index) Root() string {
	return ix.root
}

// resolve joins a relative path with the root and rejects escapes.
func (ix *Index) resolve(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs := filepath.Join(ix.root, filepath.Clean(path))
	if abs != ix.root && !strings.HasPrefix(abs, ix.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the code root", path)
	}
	return abs, nil
}

// FileContent is the result of a ReadFile query.
type FileContent struct {
	Path       string
	Content    string
	StartLine  int
	LinesRead  int
	TotalLines int
	Truncated  bool
}

// ReadFile reads up to maxLines lines of a file starting at startLine (1-based).
func (ix *Index) ReadFile(path string, maxLines, startLine int) (FileContent, error) {
	if maxLines <= 0 {
		maxLines = DefaultReadLines
	}
	if startLine <= 0 {
		startLine = 1
	}

	abs, err := ix.resolve(path)
	if err != nil {
		return FileContent{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return FileContent{}, fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return FileContent{}, fmt.Errorf("%s is a directory, not a file", path)
	}

	f, err := os.Open(abs)
	if err != nil {
		return FileContent{}, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	total := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		total++
		if total >= startLine && len(lines) < maxLines {
			lines = append(lines, scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		return FileContent{}, fmt.Errorf("failed reading %s: %w", path, err)
	}

	return FileContent{
		Path:       path,
		Content:    strings.Join(lines, "\n"),
		StartLine:  startLine,
		LinesRead:  len(lines),
		TotalLines: total,
		Truncated:  startLine+len(lines)-1 < total,
	}, nil
}

// FindFiles returns relative paths matching a glob pattern. A bare
// filename pattern like "*.go" matches at any depth.
func (ix *Index) FindFiles(pattern string, maxResults int) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %q", pattern)
	}

	// Bare filename patterns search recursively.
	matchName := !strings.ContainsRune(pattern, '/')

	var matches []string
	err := ix.walkFiles(func(rel string) bool {
		target := rel
		if matchName {
			target = filepath.Base(rel)
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(target)); ok {
			matches = append(matches, rel)
		}
		return len(matches) < maxResults
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Match is a single search hit.
type Match struct {
	Path    string
	Line    int
	Snippet string
}

// SearchCode scans file contents for a keyword. Extensions is a
// comma-separated filter like "go,py"; "*" or empty means all files.
func (ix *Index) SearchCode(keyword, extensions string, maxResults int) ([]Match, error) {
	if keyword == "" {
		return nil, fmt.Errorf("search keyword cannot be empty")
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	exts := parseExtensions(extensions)

	var matches []Match
	err := ix.walkFiles(func(rel string) bool {
		if !extensionAllowed(rel, exts) {
			return true
		}
		abs := filepath.Join(ix.root, rel)
		if info, err := os.Stat(abs); err != nil || info.Size() > maxSearchFileSize {
			return true
		}
		f, err := os.Open(abs)
		if err != nil {
			return true
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if strings.Contains(line, keyword) {
				matches = append(matches, Match{
					Path:    rel,
					Line:    lineNo,
					Snippet: strings.TrimSpace(line),
				})
				if len(matches) >= maxResults {
					return false
				}
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// FindByExt returns relative paths whose extension is in the
// comma-separated list, e.g. "go,mod".
func (ix *Index) FindByExt(extensions string, maxResults int) ([]string, error) {
	exts := parseExtensions(extensions)
	if len(exts) == 0 {
		return nil, fmt.Errorf("at least one extension is required")
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var matches []string
	err := ix.walkFiles(func(rel string) bool {
		if extensionAllowed(rel, exts) {
			matches = append(matches, rel)
		}
		return len(matches) < maxResults
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// Listing is the result of a ListDir query.
type Listing struct {
	Path  string
	Dirs  []string
	Files []string
}

// ListDir lists the immediate children of a directory.
func (ix *Index) ListDir(path string) (Listing, error) {
	abs, err := ix.resolve(path)
	if err != nil {
		return Listing{}, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return Listing{}, fmt.Errorf("cannot list %s: %w", path, err)
	}

	listing := Listing{Path: path}
	for _, e := range entries {
		if e.IsDir() {
			listing.Dirs = append(listing.Dirs, e.Name())
		} else {
			listing.Files = append(listing.Files, e.Name())
		}
	}
	sort.Strings(listing.Dirs)
	sort.Strings(listing.Files)
	return listing, nil
}

// Info describes a single file.
type Info struct {
	Path      string
	SizeBytes int64
	Lines     int
	Extension string
	Modified  string
}

// FileInfo returns size and line count for a file.
func (ix *Index) FileInfo(path string) (Info, error) {
	abs, err := ix.resolve(path)
	if err != nil {
		return Info{}, err
	}
	stat, err := os.Stat(abs)
	if err != nil {
		return Info{}, fmt.Errorf("file not found: %s", path)
	}
	if stat.IsDir() {
		return Info{}, fmt.Errorf("%s is a directory, not a file", path)
	}

	lines := 0
	if stat.Size() <= maxSearchFileSize {
		f, err := os.Open(abs)
		if err == nil {
			scanner := bufio.NewScanner(f)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				lines++
			}
			f.Close()
		}
	}

	return Info{
		Path:      path,
		SizeBytes: stat.Size(),
		Lines:     lines,
		Extension: strings.TrimPrefix(filepath.Ext(path), "."),
		Modified:  stat.ModTime().UTC().Format("2006-01-02 15:04:05"),
	}, nil
}

// walkFiles visits every regular file under the root, skipping hidden
// directories. The visitor returns false to stop the walk.
func (ix *Index) walkFiles(visit func(rel string) bool) error {
	err := filepath.WalkDir(ix.root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") && path != ix.root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(ix.root, path)
		if err != nil {
			return nil
		}
		if !visit(rel) {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && err != filepath.SkipAll {
		return fmt.Errorf("walk failed: %w", err)
	}
	return nil
}

// parseExtensions normalizes a comma-separated extension list.
// Returns nil for "*" or empty, meaning no filter.
func parseExtensions(extensions string) []string {
	extensions = strings.TrimSpace(extensions)
	if extensions == "" || extensions == "*" {
		return nil
	}
	var exts []string
	for _, e := range strings.Split(extensions, ",") {
		e = strings.TrimSpace(strings.TrimPrefix(e, "."))
		if e != "" {
			exts = append(exts, strings.ToLower(e))
		}
	}
	return exts
}

// extensionAllowed checks a path against a normalized extension list.
// An empty list allows everything.
func extensionAllowed(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}
