// Package grammar parses free-form model output into structured intents.
//
// The model is prompted to answer in a small marker language:
//
//	Thought: <reasoning>
//	Action: tool_name(arg="value", ...)
//
// or, when it can answer:
//
//	Thought: <reasoning>
//	Final Answer: <answer>
//	Memory:
//	file: <path>
//	overview: ...
//	key_definitions: a, b, c
//	core_logic: ...
//	dependencies: x, y
//	needed_info: ...
//
// Information Hiding:
// - Marker patterns and extraction order hidden
// - Absence handling (empty fields, all-or-nothing memory) encapsulated
package grammar

import (
	"regexp"
	"strings"

	"codescout/internal/text"
	"codescout/memory"
)

// Invocation is a parsed tool call. Arguments are string-typed at the
// parse boundary; numeric coercion belongs to the dispatcher.
type Invocation struct {
	Name      string
	Arguments map[string]string
}

// Response holds the structured fields extracted from one model output.
// Absent fields are zero values; Action and Memory are nil when absent.
type Response struct {
	Thought     string
	Action      *Invocation
	FinalAnswer string
	Memory      *memory.FileSummary
}

// HasAction reports whether a tool call was recognized.
func (r Response) HasAction() bool {
	return r.Action != nil
}

// HasFinalAnswer reports whether the response terminates the question.
func (r Response) HasFinalAnswer() bool {
	return r.FinalAnswer != ""
}

// IsEmpty reports whether no recognized marker was found (a no-op step).
func (r Response) IsEmpty() bool {
	return r.Thought == "" && r.Action == nil && r.FinalAnswer == ""
}

var (
	thoughtRe = regexp.MustCompile(`(?s)Thought:\s*(.+?)(?:\nAction:|\nFinal Answer:|\nMemory:|$)`)
	actionRe  = regexp.MustCompile(`Action:\s*(\w+)\(([^)]*)\)`)
	argRe     = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
	answerRe  = regexp.MustCompile(`(?s)Final Answer:\s*(.+?)(?:\nMemory:|$)`)
	memoryRe  = regexp.MustCompile(`(?s)Memory:\s*` +
		`file:\s*(.+?)\n` +
		`overview:\s*(.*?)\n` +
		`key_definitions:\s*(.*?)\n` +
		`core_logic:\s*(.*?)\n` +
		`dependencies:\s*(.*?)\n` +
		`needed_info:\s*(.*?)(?:\n\n|$)`)
)

// Parse extracts the structured fields from raw model output.
// Only the first Action occurrence is honored; one tool call per step.
// A Memory block missing any of its six lines is treated as absent.
func Parse(raw string) Response {
	var resp Response
	raw = text.StripCodeFences(raw)

	if m := thoughtRe.FindStringSubmatch(raw); m != nil {
		resp.Thought = strings.TrimSpace(m[1])
	}

	if m := actionRe.FindStringSubmatch(raw); m != nil {
		inv := &Invocation{
			Name:      m[1],
			Arguments: make(map[string]string),
		}
		for _, arg := range argRe.FindAllStringSubmatch(m[2], -1) {
			inv.Arguments[arg[1]] = arg[2]
		}
		resp.Action = inv
	}

	if m := answerRe.FindStringSubmatch(raw); m != nil {
		resp.FinalAnswer = strings.TrimSpace(m[1])
	}

	if m := memoryRe.FindStringSubmatch(raw); m != nil {
		summary := &memory.FileSummary{
			FilePath:       strings.TrimSpace(m[1]),
			Overview:       strings.TrimSpace(m[2]),
			KeyDefinitions: splitList(m[3]),
			CoreLogic:      strings.TrimSpace(m[4]),
			Dependencies:   splitList(m[5]),
			NeededInfo:     strings.TrimSpace(m[6]),
		}
		if summary.FilePath != "" {
			resp.Memory = summary
		}
	}

	return resp
}

// splitList splits a comma-separated list, trimming elements and
// dropping empty ones.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
