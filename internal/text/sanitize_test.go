package text

import "testing"

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fences",
			input: "Thought: plain reply\nFinal Answer: done",
			want:  "Thought: plain reply\nFinal Answer: done",
		},
		{
			name:  "bare fences",
			input: "```\nThought: fenced\n```",
			want:  "Thought: fenced",
		},
		{
			name:  "language tagged fence",
			input: "```text\nThought: tagged\n```",
			want:  "Thought: tagged",
		},
		{
			name:  "surrounding whitespace",
			input: "  \n```\nThought: padded\n```\n  ",
			want:  "Thought: padded",
		},
		{
			name:  "interior fence untouched",
			input: "Final Answer: run ```go test``` locally",
			want:  "Final Answer: run ```go test``` locally",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.input); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
