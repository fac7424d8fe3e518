package agent

import "fmt"

// systemPrompt builds the system message for one model call. catalog is the
// rendered tool list, digest the rendered memory records; digest may be empty
// on the first step.
func systemPrompt(catalog, digest string, maxSteps int) string {
	prompt := fmt.Sprintf(`You are a code reading assistant. You answer questions about a codebase by exploring it with the tools below.

## Workflow
1. Break the question down and decide which files matter.
2. Use tools to locate and read those files.
3. After reading a file, summarize it in a Memory block so later steps can rely on the summary instead of re-reading.
4. When you have enough information, give the Final Answer.

## Available Tools
%s

## Rules
- Take at most one action per reply. Only the first Action line is executed.
- Raw file content is only visible in the step that read it. Write a Memory block for every file you read, or the content is lost.
- Prefer the memory summaries below over re-reading files you already summarized.
- You have at most %d steps to answer the current question.`, catalog, maxSteps)

	if digest != "" {
		prompt += "\n\n## Files already summarized\n" + digest
	}
	return prompt
}

// instructionBlock restates the question together with the exact response
// format the parser accepts.
func instructionBlock(question string) string {
	return fmt.Sprintf(`%s

Reply in exactly this format.

To use a tool:
Thought: why this tool and these arguments
Action: tool_name(param="value", other="value")

To answer:
Thought: why the gathered information suffices
Final Answer: the answer to the question

If this reply contains content read from a file, append:
Memory:
file: path/to/file
overview: one sentence on what the file is for
key_definitions: comma-separated functions, types and constants it defines
core_logic: one or two sentences on the main flow
dependencies: comma-separated modules or files it depends on
needed_info: what is still unknown, or "none"

All argument values go in double quotes. Do not wrap the reply in markdown fences.`, question)
}
