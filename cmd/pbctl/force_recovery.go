package main

import (
	"fmt"
	"time"

	"github.com/pebbleos/bootcore/hal"
	"github.com/spf13/cobra"
)

var forceRecoveryButtons = []hal.Button{hal.ButtonUp, hal.ButtonBack}

func newForceRecoveryCmd(boardPath *string) *cobra.Command {
	var hold time.Duration
	var poll time.Duration
	cmd := &cobra.Command{
		Use:   "force-recovery",
		Short: "Hold UP+BACK at the keyboard to simulate the force-recovery button combo",
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := newKeyboardButtons(poll * 2)
			if err != nil {
				return err
			}
			defer kb.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "hold u and b together for %s (ctrl-c to abort)...\n", hold)
			delay := realDelay{}
			if hal.ButtonHoldFor(kb, delay, forceRecoveryButtons, hold, poll) {
				fmt.Fprintln(cmd.OutOrStdout(), "force-recovery combo detected")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "combo released before the hold completed")
			return nil
		},
	}
	cmd.Flags().DurationVar(&hold, "hold", 5*time.Second, "how long the combo must be held")
	cmd.Flags().DurationVar(&poll, "poll", 50*time.Millisecond, "polling interval while checking the hold")
	return cmd
}

// realDelay implements hal.Delay against the wall clock, for commands run
// interactively against a real keyboard rather than a simulated board.
type realDelay struct{}

func (realDelay) Ms(d uint32) { time.Sleep(time.Duration(d) * time.Millisecond) }
func (realDelay) Us(d uint32) { time.Sleep(time.Duration(d) * time.Microsecond) }

var _ hal.Delay = realDelay{}
