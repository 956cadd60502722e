package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifepanel/pkg/life"
)

var patternsShow bool

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the built-in starting patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range life.Patterns() {
			p, _ := life.LookupPattern(name)
			if !patternsShow {
				size := p.Size()
				fmt.Fprintf(out, "%-10s %dx%d\n", name, size.W, size.H)
				continue
			}
			if err := life.Format(out, p, name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.Flags().BoolVar(&patternsShow, "show", false, "print each pattern")
}
