package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apc-control/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := midi.ListPorts()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "=== MIDI Input Ports ===")
		for i, n := range names.Inputs {
			fmt.Fprintf(out, "  %d: %s\n", i, n)
		}
		fmt.Fprintln(out, "\n=== MIDI Output Ports ===")
		for i, n := range names.Outputs {
			fmt.Fprintf(out, "  %d: %s\n", i, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
