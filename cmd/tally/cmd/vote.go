package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"boscoin.io/tally/cmd/tally/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/transaction/operation"
)

var (
	voteCmd   *cobra.Command
	voteFlags = common.NewSignerFlags()
)

func init() {
	voteCmd = &cobra.Command{
		Use:   "vote <candidate address> [<candidate address>...]",
		Short: "Vote for the candidates in one transaction",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			bodies, err := makeVotes(args)
			if err != nil {
				common.PrintFlagsError(c, "<candidate address>", err)
			}

			voteFlags.Submit(c, bodies...)
		},
	}
	voteFlags.AddFlags(voteCmd)

	rootCmd.AddCommand(voteCmd)
}

func makeVotes(addresses []string) (bodies []operation.Body, err error) {
	for _, address := range addresses {
		if !keypair.IsValidAddress(address) {
			return nil, errors.New("not a public address: " + address)
		}
		bodies = append(bodies, operation.NewVote(address))
	}

	return
}
