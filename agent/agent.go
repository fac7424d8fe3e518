// Package agent runs the reason-act loop that drives a code exploration
// session: call the model, parse its reply, dispatch tools, fold memory
// summaries back into the next prompt.
package agent

import (
	"context"
	"strings"

	"codescout/grammar"
	"codescout/llm"
	"codescout/memory"
	"codescout/tools"
)

// DefaultMaxSteps bounds how many reason-act rounds a single question may take.
const DefaultMaxSteps = 10

// BudgetExhaustedAnswer is returned when a question does not converge within
// the step budget. It is never appended to the conversation history.
const BudgetExhaustedAnswer = "step budget exhausted, please narrow the question"

// Step records one round of the loop for inspection.
type Step struct {
	Index       int
	Thought     string
	Action      string
	Arguments   map[string]string
	Observation string
	FinalAnswer string
}

// Stats is a point-in-time snapshot of session state.
type Stats struct {
	HistoryLength int
	MemoryCount   int
	TotalSteps    int
	CodeRoot      string
	Usage         llm.TokenUsage
}

// Session holds the conversation state for one user. It is not safe for
// concurrent use; callers serialize Ask.
type Session struct {
	client     *llm.Client
	registry   *tools.Registry
	dispatcher *tools.Dispatcher
	memories   *memory.Store
	history    []llm.ChatMessage
	steps      []Step
	maxSteps   int
	codeRoot   string
	observer   func(chunk string)
	usage      llm.TokenUsage
}

// NewSession creates a session over the given model client and tool registry.
// codeRoot is only reported through Stats; the tools carry their own root.
func NewSession(client *llm.Client, registry *tools.Registry, codeRoot string) *Session {
	return &Session{
		client:     client,
		registry:   registry,
		dispatcher: tools.NewDispatcher(registry),
		memories:   memory.NewStore(),
		maxSteps:   DefaultMaxSteps,
		codeRoot:   codeRoot,
	}
}

// WithMaxSteps overrides the per-question step budget.
func (s *Session) WithMaxSteps(n int) *Session {
	if n > 0 {
		s.maxSteps = n
	}
	return s
}

// WithObserver streams raw model output chunks to fn as they arrive.
func (s *Session) WithObserver(fn func(chunk string)) *Session {
	s.observer = fn
	return s
}

// WithHistory seeds the conversation with a previously saved transcript.
func (s *Session) WithHistory(history []llm.ChatMessage) *Session {
	s.history = append(s.history[:0], history...)
	return s
}

// Ask runs the reason-act loop for one question and returns the final answer.
// Transport failures abort the current question and propagate; the history
// and memory accumulated so far stay intact.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	s.steps = s.steps[:0]
	s.history = append(s.history, llm.UserMessage(question))

	for i := 1; i <= s.maxSteps; i++ {
		raw, err := s.complete(ctx, s.assemble(question))
		if err != nil {
			return "", err
		}

		resp := grammar.Parse(raw)
		step := Step{Index: i, Thought: resp.Thought}

		if resp.Memory != nil {
			s.memories.Upsert(*resp.Memory)
		}

		// A final answer wins even when the reply also names an action.
		if resp.HasFinalAnswer() {
			step.FinalAnswer = resp.FinalAnswer
			s.steps = append(s.steps, step)
			s.history = append(s.history, llm.AssistantMessage(resp.FinalAnswer))
			return resp.FinalAnswer, nil
		}

		// Intermediate replies are never echoed back as assistant turns;
		// only the observation reaches the history. A reply with neither
		// marker burns a step without side effects.
		if resp.HasAction() {
			step.Action = resp.Action.Name
			step.Arguments = resp.Action.Arguments
			obs := s.dispatcher.Dispatch(ctx, resp.Action.Name, resp.Action.Arguments)
			step.Observation = obs.JSON()
			s.history = append(s.history, llm.UserMessage("Observation: "+obs.JSON()))
		}

		s.steps = append(s.steps, step)
	}

	return BudgetExhaustedAnswer, nil
}

// Clear drops the conversation history, memory records and step trace.
func (s *Session) Clear() {
	s.history = nil
	s.steps = nil
	s.memories.Clear()
	s.usage = llm.TokenUsage{}
}

// Stats reports the current session state.
func (s *Session) Stats() Stats {
	return Stats{
		HistoryLength: len(s.history),
		MemoryCount:   s.memories.Len(),
		TotalSteps:    len(s.steps),
		CodeRoot:      s.codeRoot,
		Usage:         s.usage,
	}
}

// Steps returns the trace of the most recent question.
func (s *Session) Steps() []Step { return s.steps }

// History returns the accumulated conversation transcript.
func (s *Session) History() []llm.ChatMessage { return s.history }

// Memories exposes the memory store, mainly for status displays.
func (s *Session) Memories() *memory.Store { return s.memories }

// assemble builds the message list for one model call: system prompt with
// the tool catalog and memory digest, the running history, then the question
// restated with the response format instructions. The digest is recomputed
// here so every step sees memory written by the previous one.
func (s *Session) assemble(question string) []llm.ChatMessage {
	messages := make([]llm.ChatMessage, 0, len(s.history)+2)
	messages = append(messages, llm.SystemMessage(systemPrompt(s.registry.Catalog(), s.memories.Digest(), s.maxSteps)))
	messages = append(messages, s.history...)
	messages = append(messages, llm.UserMessage(instructionBlock(question)))
	return messages
}

type streamResult struct {
	usage *llm.TokenUsage
	err   error
}

func (s *Session) complete(ctx context.Context, messages []llm.ChatMessage) (string, error) {
	if s.observer == nil {
		text, usage, err := s.client.Chat(ctx, messages)
		if err != nil {
			return "", err
		}
		s.usage.Add(usage)
		return text, nil
	}

	chunks := make(chan string, 64)
	done := make(chan streamResult, 1)
	go func() {
		defer close(chunks)
		usage, err := s.client.StreamChat(ctx, messages, chunks)
		done <- streamResult{usage: usage, err: err}
	}()

	var b strings.Builder
	for chunk := range chunks {
		s.observer(chunk)
		b.WriteString(chunk)
	}
	res := <-done
	if res.err != nil {
		return "", res.err
	}
	s.usage.Add(res.usage)
	return b.String(), nil
}
