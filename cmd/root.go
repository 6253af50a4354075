package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/questiongen"
)

var rootCmd = &cobra.Command{
	Use:   "examgen",
	Short: "LLM-backed exam question generator",
	Long:  "Examgen generates and validates multiple-choice exam questions using an LLM provider, with structural and semantic audits of every candidate.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort; system env wins if no file is present.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger. Debug level with --verbose,
// info otherwise.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// newService wires the provider discovered from the environment into a
// pipeline orchestrator.
func newService(cmd *cobra.Command, logger *zap.Logger) (*questiongen.Service, error) {
	ctx := cmd.Context()

	// Explicit EXAMGEN_* config wins; otherwise probe the standard
	// provider key env vars.
	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		llmCfg = discovered
	}
	provider, err := llm.NewProvider(ctx, llmCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	return questiongen.NewService(provider, logger, questiongen.DefaultConfig()), nil
}
