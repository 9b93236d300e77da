package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/setanarut/freepainter"
	"github.com/setanarut/freepainter/ui"
)

type rootFlags struct {
	maxWidth    int
	maxHeight   int
	blockSize   int
	mode        string
	paletteSize int
	debug       bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "freepainter [image]",
		Short: "Paint mosaic blocks over the images of a folder",
		Long: `Freepainter opens an image and every supported image next to it
(png, jpg, jpeg, bmp, gif). Drag over the picture to mosaic the cells under
the pointer, then use "Save & Next" or "Back" to write the edits in place and
move through the folder.

Without an argument a file dialog asks for the starting image.`,
		Example: `  # Pick the first image from a dialog
  freepainter

  # Start on a given file with 20px cells
  freepainter --block-size 20 ~/Pictures/scan/001.png`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(f.debug)

			opt, err := resolveOptions(cmd, f)
			if err != nil {
				return err
			}

			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			slog.Debug("Starting editor", "start", start, "block", opt.BlockSize, "mode", opt.FillMode)
			return ui.Run(start, opt)
		},
	}

	def := freepainter.DefaultOptions()
	cmd.Flags().IntVar(&f.maxWidth, "max-width", def.MaxWidth, "Maximum display width")
	cmd.Flags().IntVar(&f.maxHeight, "max-height", def.MaxHeight, "Maximum display height")
	cmd.Flags().IntVarP(&f.blockSize, "block-size", "b", def.BlockSize, "Initial mosaic cell size (5-100, step 5)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", def.FillMode.String(), "Fill mode: average, dominant or palette")
	cmd.Flags().IntVar(&f.paletteSize, "palette-size", def.PaletteSize, "Colors extracted per image in palette mode")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug logging")

	return cmd
}

// resolveOptions layers explicitly set flags over the environment.
func resolveOptions(cmd *cobra.Command, f rootFlags) (freepainter.Options, error) {
	opt, err := freepainter.OptionsFromEnv()
	if err != nil {
		return opt, err
	}
	flags := cmd.Flags()
	if flags.Changed("max-width") {
		opt.MaxWidth = f.maxWidth
	}
	if flags.Changed("max-height") {
		opt.MaxHeight = f.maxHeight
	}
	if flags.Changed("block-size") {
		opt.BlockSize = f.blockSize
	}
	if flags.Changed("palette-size") {
		opt.PaletteSize = f.paletteSize
	}
	if flags.Changed("mode") {
		m, err := freepainter.ParseFillMode(f.mode)
		if err != nil {
			return opt, err
		}
		opt.FillMode = m
	}
	return opt, opt.Validate()
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
