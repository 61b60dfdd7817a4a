package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"vizpro/internal/api"
	"vizpro/internal/config"
	"vizpro/internal/export"
	"vizpro/internal/tui"
)

var version = "0.1.0"

// globalFlags are shared by every command and override the loaded config.
type globalFlags struct {
	configPath string
	apiURL     string
	logLevel   string
}

func main() {
	var gf globalFlags
	var holo bool
	var render string

	rootCmd := &cobra.Command{
		Use:   "vizpro [dataset]",
		Short: "vizpro - interactive chart projection in the terminal",
		Long: `vizpro uploads a dataset to the chart backend, renders the generated
chart in the terminal and lets you pan, zoom and inspect data points with the mouse.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, gf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("holo") {
				cfg.Holographic = holo
			}
			if cmd.Flags().Changed("render") {
				cfg.RenderMode = render
				if err := cfg.Normalize(); err != nil {
					return err
				}
			}
			if err := setupLogger(cfg.SlogLevel(), cfg.LogFile, nil); err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			return runTUI(cfg, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&gf.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&gf.apiURL, "api-url", "", "Chart backend base URL")
	rootCmd.PersistentFlags().StringVar(&gf.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&holo, "holo", false, "Start in holographic mode")
	rootCmd.Flags().StringVar(&render, "render", "", "Render mode (blocks, braille)")

	rootCmd.AddCommand(newDownloadCommand(&gf))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, gf globalFlags) (*config.Config, error) {
	cfg, err := config.Load(gf.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = gf.apiURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = gf.logLevel
	}
	return cfg, nil
}

func newClient(cfg *config.Config) (*api.Client, error) {
	return api.New(api.Config{
		BaseURL:         cfg.APIURL,
		CSRFCookie:      cfg.CSRFCookie,
		CSRFHeader:      cfg.CSRFHeader,
		WithCredentials: true,
		Timeout:         cfg.HTTPTimeout(),
	})
}

func runTUI(cfg *config.Config, args []string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	store, err := export.NewStore(cfg.DownloadDir)
	if err != nil {
		return err
	}
	slog.Info("vizpro starting", "version", version, "api", client.BaseURL(), "render", cfg.RenderMode)

	var m tea.Model
	if len(args) > 0 {
		m = tui.NewWithPath(cfg, client, store, args[0])
	} else {
		m = tui.New(cfg, client, store)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		slog.Error("tui exited", "error", err)
		return err
	}
	slog.Info("vizpro stopped")
	return nil
}

// setupLogger sends slog output to a rotating file, and to console when it is
// not nil. The TUI owns the terminal, so it passes nil.
func setupLogger(level slog.Level, filename string, console io.Writer) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var w io.Writer = logWriter
	if console != nil {
		w = io.MultiWriter(console, logWriter)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	return nil
}
