package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuanying/epubreader/internal/chapter"
	"github.com/yuanying/epubreader/internal/config"
	"github.com/yuanying/epubreader/internal/epub"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "epubreader",
		Short: "Inspect and read EPUB ebooks from the terminal",
		Long: `epubreader opens EPUB 2 and EPUB 3 ebooks, shows their metadata and
table of contents, and prints chapters as plain text.

Settings are read from ~/.epubreader/config.yaml; flags override them.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file path (default: ~/.epubreader/config.yaml)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text, json")
	flags.BoolP("verbose", "v", false, "Enable verbose logging (same as --log-level debug)")
	flags.Bool("strict", false, "Reject books whose mimetype entry is invalid")
	flags.String("parser", "", "Chapter parser: xhtml, html, auto")
	flags.Int("cache-size", -1, "Number of chapters kept in memory while reading")

	rootCmd.AddCommand(
		newInfoCmd(),
		newTOCCmd(),
		newReadCmd(),
		newCoverCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// cliOptions is the merged result of the config file and flags.
type cliOptions struct {
	Config    *config.Config
	Logger    *slog.Logger
	Strict    bool
	Mode      chapter.Mode
	CacheSize int
}

func loadConfig(cmd *cobra.Command) (*config.Config, *config.Loader, error) {
	path, _ := cmd.Flags().GetString("config")
	var loader *config.Loader
	if path != "" {
		loader = config.NewLoaderWithPath(path)
	} else {
		var err error
		if loader, err = config.NewLoader(); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

func readCLIOptions(cmd *cobra.Command) (cliOptions, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return cliOptions{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
		if !isValidLogLevel(cfg.Log.Level) {
			return cliOptions{}, fmt.Errorf("--log-level must be one of debug, info, warn, error: %q", cfg.Log.Level)
		}
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
		if !isValidLogFormat(cfg.Log.Format) {
			return cliOptions{}, fmt.Errorf("--log-format must be text or json: %q", cfg.Log.Format)
		}
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	if flags.Changed("strict") {
		cfg.Reader.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("parser") {
		cfg.Reader.Parser, _ = flags.GetString("parser")
	}
	if flags.Changed("cache-size") {
		cfg.Reader.CacheSize, _ = flags.GetInt("cache-size")
		if cfg.Reader.CacheSize < 0 {
			return cliOptions{}, fmt.Errorf("--cache-size must be >= 0: %d", cfg.Reader.CacheSize)
		}
	}

	mode, err := chapter.ParseMode(cfg.Reader.Parser)
	if err != nil {
		return cliOptions{}, fmt.Errorf("--parser: %w", err)
	}

	return cliOptions{
		Config:    cfg,
		Logger:    buildLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format),
		Strict:    cfg.Reader.Strict,
		Mode:      mode,
		CacheSize: cfg.Reader.CacheSize,
	}, nil
}

func (o cliOptions) openBook(path string) (*epub.Book, error) {
	book, err := epub.ReadEPUB(path, epub.WithStrict(o.Strict), epub.WithLogger(o.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return book, nil
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json":
		return true
	default:
		return false
	}
}

func buildLogger(w io.Writer, level, format string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lv}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
