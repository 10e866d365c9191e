package main

import (
	"fmt"
	"os"

	"github.com/pebbleos/bootcore/firmware"
	"github.com/spf13/cobra"
)

func newStageCmd(boardPath *string) *cobra.Command {
	var imagePath, outPath string
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Wrap a raw firmware image in a descriptor, ready to install via the update engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if imagePath == "" || outPath == "" {
				return fmt.Errorf("pbctl: --image and --out are both required")
			}
			body, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("pbctl: reading image: %w", err)
			}
			staged := firmware.Stage(body)
			if err := os.WriteFile(outPath, staged, 0o644); err != nil {
				return fmt.Errorf("pbctl: writing staged image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "staged %d bytes (%d with descriptor) to %s\n", len(body), len(staged), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "path to the raw firmware image body")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write the staged descriptor+body image")
	return cmd
}
