// Code index tools: the six read-only operations the agent can invoke.
//
// Each tool binds one index query and formats its result as text for the
// model. Index errors become failure Results; nothing on this path writes
// to the filesystem.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"codescout/index"
)

// IndexTools returns the full read-only toolset over a code index.
func IndexTools(ix *index.Index) []Tool {
	return []Tool{
		&ReadFileTool{index: ix},
		&FindFilesTool{index: ix},
		&SearchCodeTool{index: ix},
		&FindByExtTool{index: ix},
		&ListDirTool{index: ix},
		&FileInfoTool{index: ix},
	}
}

// RegistryFor builds a registry preloaded with the index toolset.
func RegistryFor(ix *index.Index) (*Registry, error) {
	registry := NewRegistry()
	for _, t := range IndexTools(ix) {
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("failed to register index tools: %w", err)
		}
	}
	return registry, nil
}

// ReadFileTool reads a window of file content.
type ReadFileTool struct {
	index *index.Index
}

// Metadata returns the tool metadata.
func (t *ReadFileTool) Metadata() Metadata {
	return Metadata{
		Name:        "read_file",
		Description: "Read the contents of a file, optionally limited to a line window",
		Parameters: []Parameter{
			{Name: "path", ParamType: "string", Description: "File path relative to the code root", Required: true},
			{Name: "max_lines", ParamType: "integer", Description: "Maximum lines to return", Default: strconv.Itoa(index.DefaultReadLines)},
			{Name: "start_line", ParamType: "integer", Description: "First line to read (1-based)", Default: "1"},
		},
	}
}

type readFileArgs struct {
	Path      string `json:"path"`
	MaxLines  int    `json:"max_lines"`
	StartLine int    `json:"start_line"`
}

// Execute reads the file window.
func (t *ReadFileTool) Execute(ctx context.Context, args json.RawMessage) (Result, error) {
	var a readFileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}

	content, err := t.index.ReadFile(a.Path, a.MaxLines, a.StartLine)
	if err != nil {
		return FailureResult(err), nil
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s (lines %d-%d of %d)\n",
		content.Path, content.StartLine, content.StartLine+content.LinesRead-1, content.TotalLines)
	out.WriteString(content.Content)
	if content.Truncated {
		out.WriteString("\n[truncated: increase max_lines or adjust start_line to read more]")
	}
	return SuccessResult(out.String()), nil
}

// FindFilesTool finds files by glob pattern.
type FindFilesTool struct {
	index *index.Index
}

// Metadata returns the tool metadata.
func (t *FindFilesTool) Metadata() Metadata {
	return Metadata{
		Name:        "find_files",
		Description: "Find files by name pattern, e.g. '*.go' or 'src/**/*.py'",
		Parameters: []Parameter{
			{Name: "pattern", ParamType: "string", Description: "Glob pattern; bare filenames match at any depth", Required: true},
			{Name: "max_results", ParamType: "integer", Description: "Maximum results", Default: strconv.Itoa(index.DefaultMaxResults)},
		},
	}
}

type findFilesArgs struct {
	Pattern    string `json:"pattern"`
	MaxResults int    `json:"max_results"`
}

// Execute runs the glob search.
func (t *FindFilesTool) Execute(ctx context.Context, args json.RawMessage) (Result, error) {
	var a findFilesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}

	matches, err := t.index.FindFiles(a.Pattern, a.MaxResults)
	if err != nil {
		return FailureResult(err), nil
	}
	if len(matches) == 0 {
		return SuccessResult(fmt.Sprintf("no files match pattern %q", a.Pattern)), nil
	}
	return SuccessResult(fmt.Sprintf("%d files:\n%s", len(matches), strings.Join(matches, "\n"))), nil
}

// SearchCodeTool searches file contents for a keyword.
type SearchCodeTool struct {
	index *index.Index
}

// Metadata returns the tool metadata.
func (t *SearchCodeTool) Metadata() Metadata {
	return Metadata{
		Name:        "search_code",
		Description: "Search file contents for a keyword and return matching lines",
		Parameters: []Parameter{
			{Name: "keyword", ParamType: "string", Description: "Text to search for", Required: true},
			{Name: "extensions", ParamType: "string", Description: "Comma-separated extension filter, e.g. 'go,py'; '*' for all", Default: "*"},
			{Name: "max_results", ParamType: "integer", Description: "Maximum matches", Default: strconv.Itoa(index.DefaultMaxResults)},
		},
	}
}

type searchCodeArgs struct {
	Keyword    string `json:"keyword"`
	Extensions string `json:"extensions"`
	MaxResults int    `json:"max_results"`
}

// Execute runs the keyword search.
func (t *SearchCodeTool) Execute(ctx context.Context, args json.RawMessage) (Result, error) {
	var a searchCodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}

	matches, err := t.index.SearchCode(a.Keyword, a.Extensions, a.MaxResults)
	if err != nil {
		return FailureResult(err), nil
	}
	if len(matches) == 0 {
		return SuccessResult(fmt.Sprintf("no matches for %q", a.Keyword)), nil
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%d matches:\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(&out, "%s:%d: %s\n", m.Path, m.Line, m.Snippet)
	}
	return SuccessResult(strings.TrimRight(out.String(), "\n")), nil
}

// FindByExtTool lists files with given extensions.
type FindByExtTool struct {
	index *index.Index
}

// Metadata returns the tool metadata.
func (t *FindByExtTool) Metadata() Metadata {
	return Metadata{
		Name:        "find_by_ext",
		Description: "Find files by extension, e.g. 'go' or 'py,js'",
		Parameters: []Parameter{
			{Name: "extensions", ParamType: "string", Description: "Comma-separated list of extensions", Required: true},
			{Name: "max_results", ParamType: "integer", Description: "Maximum results", Default: strconv.Itoa(index.DefaultMaxResults)},
		},
	}
}

type findByExtArgs struct {
	Extensions string `json:"extensions"`
	MaxResults int    `json:"max_results"`
}

// Execute runs the extension search.
func (t *FindByExtTool) Execute(ctx context.Context, args json.RawMessage) (Result, error) {
	var a findByExtArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}

	matches, err := t.index.FindByExt(a.Extensions, a.MaxResults)
	if err != nil {
		return FailureResult(err), nil
	}
	if len(matches) == 0 {
		return SuccessResult(fmt.Sprintf("no files with extensions %q", a.Extensions)), nil
	}
	return SuccessResult(fmt.Sprintf("%d files:\n%s", len(matches), strings.Join(matches, "\n"))), nil
}

// ListDirTool lists a directory.
type ListDirTool struct {
	index *index.Index
}

// Metadata returns the tool metadata.
func (t *ListDirTool) Metadata() Metadata {
	return Metadata{
		Name:        "list_dir",
		Description: "List the directories and files inside a directory",
		Parameters: []Parameter{
			{Name: "path", ParamType: "string", Description: "Directory path relative to the code root", Default: "."},
		},
	}
}

type listDirArgs struct {
	Path string `json:"path"`
}

// Execute lists the directory.
func (t *ListDirTool) Execute(ctx context.Context, args json.RawMessage) (Result, error) {
	var a listDirArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}

	listing, err := t.index.ListDir(a.Path)
	if err != nil {
		return FailureResult(err), nil
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s:\n", listing.Path)
	for _, d := range listing.Dirs {
		fmt.Fprintf(&out, "  %s/\n", d)
	}
	for _, f := range listing.Files {
		fmt.Fprintf(&out, "  %s\n", f)
	}
	return SuccessResult(strings.TrimRight(out.String(), "\n")), nil
}

// FileInfoTool reports file metadata.
type FileInfoTool struct {
	index *index.Index
}

// Metadata returns the tool metadata.
func (t *FileInfoTool) Metadata() Metadata {
	return Metadata{
		Name:        "get_file_info",
		Description: "Get size, line count and modification time for a file",
		Parameters: []Parameter{
			{Name: "path", ParamType: "string", Description: "File path relative to the code root", Required: true},
		},
	}
}

type fileInfoArgs struct {
	Path string `json:"path"`
}

// Execute stats the file.
func (t *FileInfoTool) Execute(ctx context.Context, args json.RawMessage) (Result, error) {
	var a fileInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}

	info, err := t.index.FileInfo(a.Path)
	if err != nil {
		return FailureResult(err), nil
	}
	return SuccessResult(fmt.Sprintf("%s: %d bytes, %d lines, .%s, modified %s",
		info.Path, info.SizeBytes, info.Lines, info.Extension, info.Modified)), nil
}
