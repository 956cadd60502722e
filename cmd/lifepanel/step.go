package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"lifepanel/internal/logging"
	"lifepanel/pkg/life"
)

var (
	stepCount int
	stepAll   bool
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Advance the board headlessly and print it",
	Long: `Builds the configured starting board, advances it the requested number of
generations and prints the result in plaintext (.cells) form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if stepCount < 0 {
			return errors.Errorf("generations must not be negative, got %d", stepCount)
		}
		ctrl, err := newController(logging.NewNop(), nil)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		out := cmd.OutOrStdout()
		for i := 0; i < stepCount; i++ {
			if stepAll {
				if err := life.Format(out, ctrl.Grid(), fmt.Sprintf("generation %d", ctrl.Generation())); err != nil {
					return err
				}
			}
			if err := ctrl.StepOnce(); err != nil {
				return err
			}
		}
		return life.Format(out, ctrl.Grid(), fmt.Sprintf("generation %d", ctrl.Generation()))
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().IntVarP(&stepCount, "generations", "n", 1, "number of generations to advance")
	stepCmd.Flags().BoolVar(&stepAll, "all", false, "print every intermediate generation")
}
