package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/justchokingaround/aniseek/internal/allanime"
	"github.com/justchokingaround/aniseek/internal/clipboard"
	"github.com/justchokingaround/aniseek/internal/config"
	"github.com/justchokingaround/aniseek/internal/database"
	"github.com/justchokingaround/aniseek/internal/httpclient"
	"github.com/justchokingaround/aniseek/internal/search"
	"github.com/justchokingaround/aniseek/internal/session"
	"github.com/justchokingaround/aniseek/internal/tui"
	"github.com/justchokingaround/aniseek/pkg/types"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	cfgFile   string
	logLevel  string
	debugMode bool
	dubFlag   bool
	ephemeral bool

	// Set up by PersistentPreRunE
	cfg      *config.Config
	logger   *slog.Logger
	db       *gorm.DB
	settings *database.SettingsKV
	store    *session.Store
	api      *allanime.Client
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the command line and releases what setup opened, also when
// the command failed
func run(ctx context.Context) error {
	defer closeDatabase()
	return rootCmd.ExecuteContext(ctx)
}

func closeDatabase() {
	if db == nil {
		return
	}
	if err := database.Close(db); err != nil {
		logger.Error("failed to close database", "error", err)
	}
	db = nil
	settings = nil
}

var rootCmd = &cobra.Command{
	Use:   "aniseek",
	Short: "Search and browse anime from the terminal",
	Long: `aniseek is a TUI for searching and browsing the allanime catalogue.

Searches are paged, the session (results, open title, sub/dub choice) is kept
between runs, and titles can be opened in the browser or copied as links.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that do not need it
		if (cmd.Name() == "init" && cmd.Parent().Name() == "config") || cmd.Name() == "version" {
			return nil
		}

		if err := config.InitializeDirs(); err != nil {
			return fmt.Errorf("failed to initialize directories: %w", err)
		}

		var v *viper.Viper
		var err error
		cfg, v, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if debugMode {
			cfg.Network.Debug = true
			if logLevel == "" {
				cfg.Logging.Level = "debug"
			}
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		logger, err = config.InitLogger(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		slog.SetDefault(logger)

		watchConfig(v)

		if ephemeral {
			store = session.NewStore(session.NewMemoryKV())
		} else {
			db, err = database.Open(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			settings = database.NewSettingsKV(db)
			store = session.NewStore(settings)
		}

		hc := httpclient.NewClient(httpclient.FromNetworkConfig(cfg.Network, logger))
		api = allanime.NewClient(hc, cfg.API, logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger.Info("aniseek starting", "version", version, "ephemeral", ephemeral)

		state, err := restoreSession(ctx)
		if err != nil {
			return err
		}

		browser := search.NewBrowser(api, state, cfg.API.PageSize, logger)
		return tui.Run(ctx, tui.Options{
			Browser:   browser,
			Details:   api,
			Clipboard: clipboard.NewService(cfg.UI.ClipboardCommand, logger),
			Logger:    logger,
		})
	},
}

// restoreSession hydrates a state from the store, applies the startup
// preferences and starts persisting it
func restoreSession(ctx context.Context) (*session.State, error) {
	state := session.NewState()
	if err := state.Hydrate(ctx, store, logger); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	restored := state.Mode() != types.ModeNone

	if dubFlag || (cfg.UI.Dub && !restored) {
		state.SetIsDub(true)
	}
	if kind, err := types.ParseSearchType(cfg.UI.SearchType); err == nil {
		state.SetSearchType(kind)
	}

	session.NewPersister(store, logger).Attach(state)
	return state, nil
}

// watchConfig reloads the log level when the config file changes
func watchConfig(v *viper.Viper) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var next config.Config
		if err := v.Unmarshal(&next); err != nil {
			logger.Error("failed to reload config", "error", err)
			return
		}
		if logLevel == "" && !debugMode {
			config.SetLogLevel(next.Logging.Level)
		}
		logger.Info("config file changed", "name", e.Name, "log_level", next.Logging.Level)
	})
	v.WatchConfig()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/aniseek/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging, including HTTP requests")
	rootCmd.PersistentFlags().BoolVar(&dubFlag, "dub", false, "prefer dubbed episodes (overrides config and saved session)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the session in memory only")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(sessionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aniseek version %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
	},
}
