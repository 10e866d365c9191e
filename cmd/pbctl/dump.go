package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpBitsCmd(boardPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-bits",
		Short: "Print the bootbit flags currently set in retained memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := buildRig(*boardPath, nil)
			if err != nil {
				return err
			}
			r.bb.Init()
			out := cmd.OutOrStdout()
			r.bb.Dump(func(format string, kv ...interface{}) {
				fmt.Fprintf(out, format+"\n", kv...)
			})
			return nil
		},
	}
	return cmd
}
