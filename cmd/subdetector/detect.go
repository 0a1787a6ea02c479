package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/regix1/subdetector/internal/detect"
	"github.com/regix1/subdetector/internal/detectcache"
	"github.com/regix1/subdetector/internal/deps"
	"github.com/regix1/subdetector/internal/language"
	"github.com/regix1/subdetector/internal/logging"
)

type detectOptions struct {
	track       int
	jsonOutput  bool
	tableOutput bool
	noCache     bool
}

func runDetect(cmd *cobra.Command, ctx *commandContext, path string, opts *detectOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger, err := ctx.logger(cfg)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	statuses := deps.CheckBinaries(deps.Default(cfg))
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("missing required external tools: %v (run 'subdetector deps' for details)", missing)
	}

	var cache *detectcache.Store
	if cfg.Cache.Enabled && !opts.noCache {
		cache, err = detectcache.Open(cfg.Cache.Path, logger)
		if err != nil {
			logger.Warn("cache unavailable, continuing without it", logging.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	detector := detect.New(cfg, logger, cache)

	if !opts.jsonOutput {
		fmt.Fprintf(cmd.OutOrStdout(), "Detecting subtitle language in: %s\n", path)
	}

	result, err := detector.Detect(cmd.Context(), path, opts.track)
	if err != nil {
		return err
	}
	if len(result.Tracks) == 0 {
		return fmt.Errorf("%w or specified track index doesn't exist", detect.ErrNoTracks)
	}

	switch {
	case opts.jsonOutput:
		return writeJSON(cmd, result)
	case opts.tableOutput:
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), renderResultTable(result))
		return nil
	default:
		printResultLines(cmd, result)
		return nil
	}
}

func printResultLines(cmd *cobra.Command, result detect.Result) {
	colorize := isatty.IsTerminal(os.Stdout.Fd())

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "Results:")
	for _, track := range result.Tracks {
		line := track.Line(result.Container)
		if colorize {
			label := track.LanguageLabel()
			colored := text.FgGreen.Sprint(label)
			if track.Language == "" {
				colored = text.FgYellow.Sprint(label)
			}
			line = strings.Replace(line, label, colored, 1)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}

func renderResultTable(result detect.Result) string {
	headers := []string{"Stream", "Format", "Language", "Name", "Method"}
	rows := make([][]string, 0, len(result.Tracks))
	for _, track := range result.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(track.Index),
			track.Codec,
			track.LanguageLabel(),
			language.DisplayName(track.Language),
			string(track.Method),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft})
}
