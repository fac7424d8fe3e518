// Package main provides the codescout CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"codescout/cli"
)

var (
	// Global flags
	provider string
	root     string
	maxSteps int
	stream   bool
	verbose  bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "codescout",
		Short: "Conversational code exploration with LLM-driven tools",
		Long: `Ask questions about a codebase in natural language.

The model explores the code with read and search tools, memorizes compact
summaries of the files it reads, and answers from those summaries so that
long sessions stay within the context window.`,
	}

	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (openai, anthropic, deepseek, gemini)")
	rootCmd.PersistentFlags().StringVarP(&root, "root", "r", ".", "Root directory of the codebase to explore")
	rootCmd.PersistentFlags().IntVarP(&maxSteps, "max-steps", "m", 10, "Maximum reason-act steps per question")
	rootCmd.PersistentFlags().BoolVar(&stream, "stream", false, "Stream model output as it arrives")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show the step trace for each answer")

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(toolsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options() cli.Options {
	return cli.Options{
		Provider: provider,
		Root:     root,
		MaxSteps: maxSteps,
		Stream:   stream,
		Verbose:  verbose,
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question about the codebase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Ask(context.Background(), args[0], options())
		},
	}
}

func chatCmd() *cobra.Command {
	var sessionID string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive exploration session",
		Long: `Start an interactive session against the codebase.

Pass --session to persist the conversation transcript to SQLite and resume
it on the next run. File memory is rebuilt per session and not persisted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Chat(context.Background(), sessionID, dbPath, options())
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID for transcript persistence")
	cmd.Flags().StringVar(&dbPath, "db", ".codescout/codescout.db", "Database path for transcript storage")

	return cmd
}

func toolsCmd() *cobra.Command {
	var verboseTools bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools available to the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ListTools(root, verboseTools)
		},
	}

	cmd.Flags().BoolVarP(&verboseTools, "verbose", "V", false, "Show tool parameters")

	return cmd
}
