// Command pbctl is an operator and test harness CLI for the bootloader
// core: it wraps raw firmware images in a descriptor, detects the
// force-recovery button hold at the keyboard, dumps boot-bit state, and
// runs the boot policy against a simulated board built from a YAML
// descriptor.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pbctl",
		Short: "Operator and test CLI for the bootcore recovery state machine",
	}

	var boardPath string
	root.PersistentFlags().StringVar(&boardPath, "board", "", "path to a board YAML descriptor (required)")
	_ = root.MarkPersistentFlagRequired("board")

	root.AddCommand(newBootCmd(&boardPath))
	root.AddCommand(newDumpBitsCmd(&boardPath))
	root.AddCommand(newStageCmd(&boardPath))
	root.AddCommand(newForceRecoveryCmd(&boardPath))

	return root
}
