// Package main provides the LOAN-BUDDY CLI entry point: a conversational
// loan application assistant with a lender review dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"loanbuddy/cmd/loanbuddy/config"
	"loanbuddy/internal/catalog"
	"loanbuddy/internal/logging"
	"loanbuddy/internal/retrieval"
	"loanbuddy/internal/store"
)

const version = "1.2.0"

var (
	// Global flags
	verbose bool
	dataDir string

	// Logger for non-interactive subcommands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "loanbuddy",
	Short: "LOAN-BUDDY - Conversational loan application assistant",
	Long: `LOAN-BUDDY walks applicants through a bank loan application in plain
conversation: personal details, financials and references are collected in
checkpointed steps, saved after every step, and resumable at any time with
the application id and CNIC.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dataDir == "" {
			var err error
			dataDir, err = config.DataDir()
			if err != nil {
				return fmt.Errorf("could not determine data directory: %w", err)
			}
		}
		if err := logging.Initialize(dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		}

		// The interactive chat has its own presentation; structured logs
		// would just scramble the conversation.
		if cmd.CalledAs() == "loanbuddy" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the LOAN-BUDDY version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("loanbuddy %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: ./.loanbuddy or ~/.loanbuddy)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
}

// appContext bundles the shared backends every command needs.
type appContext struct {
	cfg       config.Config
	store     *store.Store
	catalog   *catalog.Catalog
	responder *retrieval.Responder
}

// buildApp loads config and wires the store, catalog and chat corpus.
func buildApp() (*appContext, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory %s: %w", dataDir, err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: using default config: %v\n", err)
	}
	logging.Boot("data directory: %s", dataDir)

	st := store.New(cfg.RecordsFile, store.NewCounter(cfg.CounterFile))

	cat, err := catalog.LoadDir(cfg.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("could not load loan catalog: %w", err)
	}

	entries, err := retrieval.LoadCorpus(cfg.CorpusFile)
	if err != nil {
		return nil, fmt.Errorf("could not load chat corpus: %w", err)
	}

	return &appContext{cfg: cfg, store: st, catalog: cat, responder: retrieval.NewResponder(entries)}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
