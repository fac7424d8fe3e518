// Command execution for CLI commands.
//
// Information Hiding:
// - Session and provider wiring hidden
// - Output formatting hidden

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"codescout/agent"
	"codescout/config"
	"codescout/index"
	"codescout/llm"
	"codescout/storage"
	"codescout/tools"
)

// Options holds CLI execution options.
type Options struct {
	Provider string
	Root     string
	MaxSteps int
	Stream   bool
	Verbose  bool
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		Root:     ".",
		MaxSteps: agent.DefaultMaxSteps,
	}
}

// Ask answers a single question about the codebase and exits.
func Ask(ctx context.Context, question string, opts Options) error {
	session, err := buildSession(opts)
	if err != nil {
		return err
	}

	answer, err := session.Ask(ctx, question)
	if err != nil {
		return reportAskError(err)
	}

	if opts.Verbose {
		printSteps(session.Steps())
	}
	if opts.Stream {
		// The observer already printed the raw replies; separate the answer.
		fmt.Println()
	}
	fmt.Printf("%s\n", answer)
	return nil
}

// Chat starts an interactive exploration session. When sessionID is set the
// transcript is persisted to SQLite at dbPath and restored on the next run.
func Chat(ctx context.Context, sessionID, dbPath string, opts Options) error {
	session, err := buildSession(opts)
	if err != nil {
		return err
	}

	// Named sessions persist to SQLite and resume; anonymous sessions get
	// a throwaway ID and an in-memory transcript.
	var store storage.ConversationStorage
	if sessionID != "" {
		s, err := storage.OpenSqlite(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer s.Close()
		store = s

		history, err := store.Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(history) > 0 {
			session.WithHistory(history)
			fmt.Printf("Resuming session '%s' (%d messages)\n", sessionID, len(history))
		}
	} else {
		sessionID = uuid.NewString()
		store = storage.NewInMemoryStorage()
	}

	fmt.Printf("Exploring %s. Ask about the code; 'help' lists commands.\n\n", opts.Root)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			return scanner.Err()
		case "help":
			printHelp()
			continue
		case "clear":
			session.Clear()
			fmt.Println("Conversation and memory cleared.")
			continue
		case "status":
			printStats(session.Stats())
			continue
		}

		answer, err := session.Ask(ctx, input)
		if err != nil {
			reportAskError(err)
			continue
		}

		if opts.Verbose {
			printSteps(session.Steps())
		}
		if opts.Stream {
			fmt.Println()
		}
		fmt.Printf("\n%s\n\n", answer)

		if err := store.Save(ctx, sessionID, session.History()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
		}
	}

	return scanner.Err()
}

// ListTools prints the tools available to the model.
func ListTools(root string, verbose bool) error {
	ix, err := index.New(root)
	if err != nil {
		return err
	}
	registry, err := tools.RegistryFor(ix)
	if err != nil {
		return err
	}

	fmt.Println("Available tools:")
	fmt.Println()

	for _, meta := range registry.List() {
		fmt.Printf("  %s\n", meta.Name)
		fmt.Printf("    %s\n", meta.Description)

		if verbose && len(meta.Parameters) > 0 {
			fmt.Println("    Parameters:")
			for _, param := range meta.Parameters {
				req := ""
				if param.Required {
					req = "*"
				}
				fmt.Printf("      %s%s: %s - %s\n", param.Name, req, param.ParamType, param.Description)
			}
		}
		fmt.Println()
	}
	return nil
}

// buildSession wires provider, index, tools and session from options.
func buildSession(opts Options) (*agent.Session, error) {
	provider, err := createProvider(opts.Provider)
	if err != nil {
		return nil, err
	}

	ix, err := index.New(opts.Root)
	if err != nil {
		return nil, err
	}

	registry, err := tools.RegistryFor(ix)
	if err != nil {
		return nil, err
	}

	session := agent.NewSession(llm.NewClient(provider), registry, opts.Root).
		WithMaxSteps(opts.MaxSteps)
	if opts.Stream {
		session.WithObserver(func(chunk string) { fmt.Print(chunk) })
	}
	return session, nil
}

// createProvider builds a provider from the flag value and environment.
func createProvider(providerName string) (llm.Provider, error) {
	if providerName == "" {
		return nil, fmt.Errorf("--provider is required for this command")
	}

	providerType, err := llm.ParseProviderType(providerName)
	if err != nil {
		return nil, err
	}

	settings, err := config.New(providerName)
	if err != nil {
		return nil, err
	}

	apiKey, err := config.APIKeyFor(providerName)
	if err != nil {
		return nil, err
	}

	return providerType.
		Model(settings.LLM.Model).
		BaseURL(settings.LLM.BaseURL).
		MaxTokens(settings.LLM.MaxTokens).
		Temperature(float32(settings.LLM.Temperature)).
		APIKey(apiKey)
}

func reportAskError(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if llm.IsTransportError(err) {
		fmt.Fprintln(os.Stderr, "Check your API key and network connectivity.")
	}
	return err
}

func printSteps(steps []agent.Step) {
	for _, step := range steps {
		fmt.Printf("  [step %d] %s\n", step.Index, step.Thought)
		if step.Action != "" {
			fmt.Printf("    action: %s %v\n", step.Action, step.Arguments)
			fmt.Printf("    observation: %s\n", truncate(step.Observation, 200))
		}
	}
}

func printStats(stats agent.Stats) {
	fmt.Printf("  conversation messages: %d\n", stats.HistoryLength)
	fmt.Printf("  memorized files:       %d\n", stats.MemoryCount)
	fmt.Printf("  steps last question:   %d\n", stats.TotalSteps)
	fmt.Printf("  code root:             %s\n", stats.CodeRoot)
	fmt.Printf("  tokens used:           %d\n", stats.Usage.TotalTokens)
}

func printHelp() {
	fmt.Println("  clear   reset conversation history and file memory")
	fmt.Println("  status  show session statistics")
	fmt.Println("  help    show this message")
	fmt.Println("  exit    leave the session")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
