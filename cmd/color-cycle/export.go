package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/color-cycle/engine"
	"github.com/lixenwraith/color-cycle/export"
	"github.com/lixenwraith/color-cycle/loader"
)

func newExportCmd() *cobra.Command {
	opts := export.DefaultOptions()
	var output, at string

	cmd := &cobra.Command{
		Use:   "export <PATH>",
		Short: "render an image's animation to an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			if logFile := setupLogging(debugLog); logFile != nil {
				defer logFile.Close()
			}

			opts.Start = engine.TimeOfDay(time.Now())
			if at != "" {
				t, err := engine.ParseTimeOfDay(at)
				if err != nil {
					return err
				}
				opts.Start = t
			}

			entry, err := loader.Open(args[0])
			if err != nil {
				return err
			}
			return writeExport(output, entry, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "GIF file to write")
	f.Float64Var(&opts.Seconds, "seconds", opts.Seconds, "length of the clip in seconds")
	f.IntVarP(&opts.FPS, "fps", "f", opts.FPS, "frames per second (at most 100)")
	f.BoolVarP(&opts.Blend, "blend", "b", false, "blend between cycle steps")
	f.IntVar(&opts.Scale, "scale", opts.Scale, "integer upscale factor")
	f.StringVar(&at, "time", "", "time of day of the first frame, HH:MM (default now)")
	f.BoolVar(&opts.ColumnReverse, "column-reverse", false, "reverse pixels in columns of 8")
	return cmd
}

// writeExport encodes to a temporary file and renames it into place on success
func writeExport(path string, entry loader.Entry, opts export.Options) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := export.WriteGIF(f, entry.Image, opts); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("export %s: %w", entry.Path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	log.Printf("export: %s -> %s (%d frames at %d fps)", entry.Path, path, opts.Frames(), opts.FPS)
	return nil
}
