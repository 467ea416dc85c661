package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/assistant"
	"github.com/weblearn/weblearn/internal/bookmarks"
	"github.com/weblearn/weblearn/internal/config"
	"github.com/weblearn/weblearn/internal/llm"
	"github.com/weblearn/weblearn/internal/logging"
	"github.com/weblearn/weblearn/internal/progress"
	"github.com/weblearn/weblearn/internal/quizbank"
	"github.com/weblearn/weblearn/internal/screens/home"
	"github.com/weblearn/weblearn/internal/search"
	"github.com/weblearn/weblearn/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "weblearn",
	Short: "Learn HTML, CSS and JavaScript in the terminal",
	Long:  "WebLearn: lessons, quizzes, an assistant and a code playground for web development beginners.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (default $XDG_CONFIG_HOME/weblearn/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WEBLEARN_DB_PATH)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep everything in memory; nothing is saved")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(playgroundCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// env holds what every command needs: configuration, logger and stores.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	st     *store.Store // nil when ephemeral
	blobs  store.Blobs
	events store.EventRepo
}

// loadConfig resolves --config and reads the configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, path, nil
}

// openEnv loads configuration, builds the logger and opens the store.
// console routes log lines to stderr as well as the log file.
func openEnv(cmd *cobra.Command, console bool) (*env, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}

	logFile, err := cfg.ResolveLogFile()
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	cfg.Log.File = logFile
	log, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	e := &env{cfg: cfg, log: log}
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		e.blobs = store.NewMemory()
		return e, nil
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.st, e.blobs, e.events = st, st, st.EventRepo()
	log.Debug("store opened", zap.String("path", dbPath))
	return e, nil
}

// openStore is openEnv for commands that need the SQLite database itself.
func openStore(cmd *cobra.Command) (*env, error) {
	e, err := openEnv(cmd, false)
	if err != nil {
		return nil, err
	}
	if e.st == nil {
		e.Close()
		return nil, fmt.Errorf("this command needs the database; drop --ephemeral")
	}
	return e, nil
}

func (e *env) Close() {
	if e.st != nil {
		e.st.Close()
	}
	_ = e.log.Sync()
}

func (e *env) tracker() *progress.Tracker {
	return progress.NewTracker(e.blobs, e.log.Named("progress"))
}

func (e *env) shelf() *bookmarks.Shelf {
	return bookmarks.NewShelf(e.blobs, e.log.Named("bookmarks"))
}

// assistant builds the assistant, adding the model fallback when a provider
// is configured or discovered from the environment.
func (e *env) assistant(ctx context.Context) *assistant.Assistant {
	log := e.log.Named("assistant")
	opts := []assistant.Option{assistant.WithLogger(log)}

	llmCfg := e.cfg.Assistant.LLM
	if !llmCfg.Enabled() && e.cfg.Assistant.Discover {
		if found, ok := llmCfg.Discover(); ok {
			llmCfg = found
		}
	}
	provider, err := llm.NewProvider(ctx, llmCfg, e.events, e.log.Named("llm"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The assistant will answer from its built-in topics only.")
	} else if provider != nil {
		opts = append(opts, assistant.WithProvider(provider, e.cfg.Assistant.MaxTokens, 0))
		log.Info("model fallback enabled", zap.String("provider", llmCfg.Provider))
	}
	return assistant.New(nil, opts...)
}

func (e *env) services(ctx context.Context) home.Services {
	return home.Services{
		Bank:      quizbank.Default(),
		Tracker:   e.tracker(),
		Assistant: e.assistant(ctx),
		Search:    search.Default(),
		Shelf:     e.shelf(),
		Prefs:     e.blobs,
		Log:       e.log,
	}
}
