package main

import (
	"fmt"
	"os"

	"github.com/Southclaws/fault/ftag"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "apcctl",
	Short: "Drive Akai APC mini and MIDI Mix controllers against a session",
	Long: `apcctl maps APC mini pads to a clip session: an in-key keyboard,
a clip launcher and a device chain view, with the LEDs mirrored in the
terminal. Controllers are hot-plugged; run with --simulate to play the
surface from the keyboard without hardware.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default ~/.config/apc-control/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		switch ftag.Get(err) {
		case ftag.InvalidArgument:
			os.Exit(2)
		case ftag.NotFound:
			fmt.Fprintln(os.Stderr, "hint: apcctl ports lists the available MIDI ports")
		}
		os.Exit(1)
	}
}
