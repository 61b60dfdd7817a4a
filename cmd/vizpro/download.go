package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"vizpro/internal/catalog"
	"vizpro/internal/config"
	"vizpro/internal/export"
	"vizpro/internal/session"
)

type downloadOptions struct {
	graphType string
	x         string
	y         []string
	colors    []string
	sync      bool
	outDir    string
}

func newDownloadCommand(gf *globalFlags) *cobra.Command {
	var opts downloadOptions

	cmd := &cobra.Command{
		Use:   "download <dataset>",
		Short: "Upload a dataset and save the rendered chart as PNG",
		Long: `Uploads the dataset, generates a chart with the given columns and saves
the image as <type>_chart.png in the output directory without overwriting
existing files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *gf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out-dir") {
				cfg.DownloadDir = opts.outDir
			}
			if err := setupLogger(cfg.SlogLevel(), cfg.LogFile, os.Stderr); err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			path, err := runDownload(cmd.Context(), cfg, args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.graphType, "type", "t", session.DefaultGraphType, "Chart type")
	cmd.Flags().StringVarP(&opts.x, "x", "x", "", "X-axis column (default: first column)")
	cmd.Flags().StringSliceVarP(&opts.y, "y", "y", nil, "Y-axis column, repeatable (default: second column)")
	cmd.Flags().StringSliceVar(&opts.colors, "color", nil, "Series color, repeatable")
	cmd.Flags().BoolVar(&opts.sync, "sync", false, "Use the first color for every series")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "Directory to save the chart in")

	return cmd
}

func runDownload(ctx context.Context, cfg *config.Config, dataset string, opts downloadOptions) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := catalog.Lookup(opts.graphType); !ok {
		slog.Warn("unknown chart type, sending anyway", "type", opts.graphType)
	}
	client, err := newClient(cfg)
	if err != nil {
		return "", err
	}
	store, err := export.NewStore(cfg.DownloadDir)
	if err != nil {
		return "", err
	}

	f, err := os.Open(dataset)
	if err != nil {
		return "", fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	uctx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout())
	defer cancel()
	cats, err := client.Upload(uctx, filepath.Base(dataset), f)
	if err != nil {
		return "", err
	}
	slog.Info("dataset uploaded", "name", filepath.Base(dataset), "columns", len(cats))

	sess := session.New(catalog.Palette(cfg.Palette))
	sess.SetCategories(cats)
	sess.GraphType = opts.graphType
	if opts.x != "" {
		if !slices.Contains(cats, opts.x) {
			return "", fmt.Errorf("unknown x column %q (have %v)", opts.x, cats)
		}
		sess.SetX(opts.x)
	}
	if len(opts.y) > 0 {
		for _, y := range sess.YColumns {
			sess.ToggleY(y)
		}
		for _, y := range opts.y {
			if !slices.Contains(cats, y) {
				return "", fmt.Errorf("unknown y column %q (have %v)", y, cats)
			}
			if !sess.IsY(y) {
				sess.ToggleY(y)
			}
		}
	}
	for i, c := range opts.colors {
		sess.SetColor(i, c)
	}
	sess.SetApplyAll(opts.sync)

	req := sess.Request(true)
	if err := req.Validate(); err != nil {
		return "", err
	}
	dctx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout())
	defer cancel()
	data, err := client.Download(dctx, req)
	if err != nil {
		return "", err
	}
	return store.Save(req.Filename(), data)
}
