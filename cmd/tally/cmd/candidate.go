package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/tally/cmd/tally/cmd/candidate"
)

var (
	candidateCmd *cobra.Command
)

func init() {
	candidateCmd = &cobra.Command{
		Use:     "candidate",
		Aliases: []string{"candidates"},
		Short:   "Manage and query the candidates",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	candidateCmd.AddCommand(
		candidate.AddCmd,
		candidate.UpdateCmd,
		candidate.RemoveCmd,
		candidate.GetCmd,
		candidate.ListCmd,
	)
	rootCmd.AddCommand(candidateCmd)
}
