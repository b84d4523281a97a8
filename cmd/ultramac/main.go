// Package main provides the CLI entrypoint for ultramac.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/ultramac/internal/config"
	"github.com/verte-zerg/ultramac/internal/game"
	"github.com/verte-zerg/ultramac/internal/logging"
	"github.com/verte-zerg/ultramac/internal/mathgen"
	"github.com/verte-zerg/ultramac/internal/model"
	"github.com/verte-zerg/ultramac/internal/stats"
	"github.com/verte-zerg/ultramac/internal/store"
	"github.com/verte-zerg/ultramac/internal/tui"
)

const (
	defaultStore    = store.BackendSQLite
	defaultLogLevel = "info"
)

var (
	flagUser      string
	flagStore     string
	flagStorePath string
	flagLogLevel  string

	playTimeLimit time.Duration
	playLower     int
	playUpper     int
	playSeed      int64
	playTemplate  string
	playNoSave    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ultramac",
		Short:         "Timed mental arithmetic drill",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "player name (prompted when empty)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", defaultStore, "score store: sqlite, csv or memory")
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store-path", "", "database file (sqlite) or directory (csv)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn or error")

	rootCmd.Flags().DurationVar(&playTimeLimit, "time-limit", game.DefaultTimeLimit, "length of a game")
	rootCmd.Flags().IntVar(&playLower, "lower", mathgen.DefaultDifficulty.Lower, "smallest operand")
	rootCmd.Flags().IntVar(&playUpper, "upper", mathgen.DefaultDifficulty.Upper, "exclusive upper bound for additive operands")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.Flags().StringVar(&playTemplate, "template", "", "only generate this template (debugging)")
	rootCmd.Flags().BoolVar(&playNoSave, "no-save", false, "keep scores in memory only")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newScoresCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if playNoSave {
		cfg.Store = store.BackendMemory
	}
	if strings.TrimSpace(cfg.Username) == "" {
		name, err := promptUsername(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg.Username = name
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, closeLog, err := logging.Setup(config.DefaultLogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLogFile(closeLog)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting", "user", cfg.Username, "difficulty", gen.Difficulty().String(), "store", cfg.Store)

	m, err := tui.NewModel(tui.Options{
		NewSession: func() (*game.Session, error) {
			return game.New(game.Options{
				Username:  cfg.Username,
				TimeLimit: cfg.TimeLimit,
				Problems:  gen,
				Recorder:  st,
				Logger:    logger,
			})
		},
		Store:  st,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveConfig merges the config file under the command line flags.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &flagUser, fileCfg.Game.User)
	applyStringConfig(cmd, "store", &flagStore, fileCfg.Store.Backend)
	applyStringConfig(cmd, "store-path", &flagStorePath, fileCfg.Store.Path)
	applyStringConfig(cmd, "log-level", &flagLogLevel, fileCfg.Log.Level)
	applyDurationConfig(cmd, "time-limit", &playTimeLimit, fileCfg.Game.TimeLimit)
	applyIntConfig(cmd, "lower", &playLower, fileCfg.Game.Lower)
	applyIntConfig(cmd, "upper", &playUpper, fileCfg.Game.Upper)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Game.Seed)

	return model.Config{
		Username:  strings.TrimSpace(flagUser),
		TimeLimit: playTimeLimit,
		Lower:     playLower,
		Upper:     playUpper,
		Seed:      playSeed,
		Template:  playTemplate,
		Store:     strings.ToLower(strings.TrimSpace(flagStore)),
		StorePath: flagStorePath,
		LogLevel:  strings.ToLower(strings.TrimSpace(flagLogLevel)),
	}, nil
}

func newGenerator(cfg model.Config) (*mathgen.Generator, error) {
	difficulty := mathgen.Difficulty{Lower: cfg.Lower, Upper: cfg.Upper}
	var (
		gen *mathgen.Generator
		err error
	)
	if cfg.Seed != 0 {
		gen, err = mathgen.NewWithSeed(difficulty, cfg.Seed)
	} else {
		gen, err = mathgen.New(difficulty)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Template != "" {
		t, err := mathgen.ParseTemplate(cfg.Template)
		if err != nil {
			return nil, err
		}
		if err := gen.Only(t); err != nil {
			return nil, err
		}
	}
	return gen, nil
}

func openStore(cfg model.Config) (store.ScoreStore, error) {
	path := cfg.StorePath
	if path == "" {
		path = config.DefaultStorePath(cfg.Store)
	}
	st, err := store.Open(cfg.Store, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	return st, nil
}

func closeStore(st store.ScoreStore) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close store: %v\n", cerr)
	}
}

func closeLogFile(closeFn func() error) {
	if cerr := closeFn(); cerr != nil {
		logErrf("failed to close log: %v\n", cerr)
	}
}

// promptUsername asks for a name until a non-blank line is read.
func promptUsername(in io.Reader, out io.Writer) (string, error) {
	interactive := isTerminal(in)
	reader := bufio.NewReader(in)
	for {
		if interactive {
			if _, err := fmt.Fprint(out, "Username: "); err != nil {
				return "", err
			}
		}
		line, err := reader.ReadString('\n')
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("no username given; pass --user or set [game] user in %s", config.DefaultConfigPath())
			}
			return "", fmt.Errorf("failed to read username: %w", err)
		}
	}
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show score history",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(st)

	out := cmd.OutOrStdout()
	if cfg.Username == "" {
		return printUsers(cmd, st)
	}
	report, err := stats.BuildReport(cmd.Context(), st, cfg.Username)
	if err != nil {
		return fmt.Errorf("failed to load scores: %w", err)
	}
	if err := stats.RenderReport(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func printUsers(cmd *cobra.Command, st store.ScoreStore) error {
	lister, ok := st.(store.UserLister)
	if !ok {
		return fmt.Errorf("--user is required")
	}
	users, err := lister.Users(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		logErrf("No scores recorded yet. Play with: ultramac --user <name>\n")
		return nil
	}
	for _, user := range users {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), user); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
