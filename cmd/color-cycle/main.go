package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/color-cycle/core"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.3.0"

// Flag values shared by the root command
var (
	fps           int
	blend         bool
	osd           bool
	columnReverse bool
	backend       string
	configFile    string
	soundFile     string
	showStats     bool
	debugLog      bool
	helpHotkeys   bool
	writeConfig   bool
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the player crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "color-cycle [flags] <PATHS>...",
		Short:         "play color cycling animations in the terminal",
		Long:          "Plays Canvas Cycle JSON, Living Worlds JSON and IFF ILBM/PBM color cycling images\nusing 24-bit color and half-block characters.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE:          runPlay,
	}

	f := rootCmd.Flags()
	f.IntVarP(&fps, "fps", "f", 60, "frames per second")
	f.BoolVarP(&blend, "blend", "b", false, "blend between cycle steps")
	f.BoolVarP(&osd, "osd", "o", false, "show on screen display")
	f.BoolVar(&columnReverse, "column-reverse", false, "reverse pixels in columns of 8")
	f.StringVar(&backend, "backend", "native", "display backend: native or tcell")
	f.StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/color-cycle/config.yaml)")
	f.StringVar(&soundFile, "sound", "", "WAV file to loop while playing")
	f.BoolVar(&showStats, "stats", false, "print frame time statistics after exit")
	f.BoolVar(&helpHotkeys, "help-hotkeys", false, "print hotkey help and exit")
	f.BoolVar(&writeConfig, "write-config", false, "save the effective settings to the config file and exit")
	f.BoolP("version", "V", false, "print version and exit")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write a debug log to logs/")

	rootCmd.AddCommand(newExportCmd())
	return rootCmd
}
