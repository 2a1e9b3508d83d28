package cmd

import (
	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn [category]",
	Short: "Start a review session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var category string
		if len(args) == 1 {
			category = args[0]
		}
		return runApp(cmd, category)
	},
}
