package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"apc-control/midi"
)

var ledsHold time.Duration

var ledsCmd = &cobra.Command{
	Use:   "leds <port>",
	Short: "Light the APC mini colour test pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := midi.OpenPort(args[0])
		if err != nil {
			return err
		}
		defer port.Close()

		for _, ev := range testPattern() {
			if err := port.Send(ev); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pattern on %s for %s\n", port.Name(), ledsHold)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, ledsHold)
		defer cancel()
		<-ctx.Done()
		return nil
	},
}

func init() {
	ledsCmd.Flags().DurationVar(&ledsHold, "hold", 5*time.Second, "how long to keep the pattern lit")
	rootCmd.AddCommand(ledsCmd)
}

// testPattern cycles the six lit colours diagonally over the grid, with the
// bottom row red and the side column green
func testPattern() []midi.Event {
	var events []midi.Event
	for row := 0; row < midi.GridSize; row++ {
		for col := 0; col < midi.GridSize; col++ {
			color := midi.Color(1 + (col+row)%6)
			events = append(events, midi.NoteOnEvent(uint8(midi.Pad(col, row)), uint8(color)))
		}
	}
	for i := 0; i < midi.GridSize; i++ {
		events = append(events,
			midi.NoteOnEvent(uint8(midi.BottomPad(i)), uint8(midi.Red)),
			midi.NoteOnEvent(uint8(midi.SideStart+i), uint8(midi.Green)),
		)
	}
	return events
}
