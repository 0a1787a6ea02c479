package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)
	opts := &detectOptions{track: -1}

	rootCmd := &cobra.Command{
		Use:   "subdetector <file>",
		Short: "Detect subtitle languages in media files or subtitle files",
		Long: `subdetector identifies the natural language of subtitle tracks inside
media containers, or of standalone subtitle files.

Detection strategy, per track:
  1. container metadata (language tags)
  2. text-content language detection for text subtitles (SRT/ASS/VTT)
  3. OCR over rendered frames for image subtitles (PGS/VOBSUB)

Examples:
  subdetector movie.mkv              # All subtitle tracks
  subdetector movie.mkv -t 2         # Only stream index 2
  subdetector movie.srt              # Standalone subtitle file
  subdetector movie.mkv --json       # Machine-readable output`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, ctx, args[0], opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override configured log level (debug, info, warn, error)")

	rootCmd.Flags().IntVarP(&opts.track, "track", "t", -1, "Specific subtitle track index to analyze (media files only)")
	rootCmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Emit results as JSON")
	rootCmd.Flags().BoolVar(&opts.tableOutput, "table", false, "Render results as a table")
	rootCmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Bypass the detection result cache")

	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
