package main

import (
	"errors"
	"fmt"

	"github.com/pebbleos/bootcore/bootpolicy"
	"github.com/pebbleos/bootcore/handoff"
	"github.com/spf13/cobra"
)

func newBootCmd(boardPath *string) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "boot",
		Short: "Run the boot policy against a simulated board and report the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogrusLogger(debug)

			r, err := buildRig(*boardPath, logger)
			if err != nil {
				return err
			}
			r.bb.Init()

			base, err := r.policy.Run()
			if err != nil {
				var sad *bootpolicy.SADError
				if errors.As(err, &sad) {
					fmt.Fprintf(cmd.OutOrStdout(), "SAD: %s\n", sad.Code)
					return nil
				}
				if errors.Is(err, bootpolicy.ErrResetRequested) {
					fmt.Fprintln(cmd.OutOrStdout(), "reset requested")
					return nil
				}
				return err
			}

			vt, err := handoff.Jump(r.board, base, handoff.Hooks{}, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "jumped to 0x%08X (reset handler 0x%08X)\n", base, vt.ResetHandler)
			return nil
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug-level logging")
	return cmd
}
