package candidate

import (
	"context"
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"boscoin.io/tally/cmd/tally/common"
	"boscoin.io/tally/lib/client"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/transaction/operation"
)

var (
	AddCmd    *cobra.Command
	UpdateCmd *cobra.Command
	RemoveCmd *cobra.Command
	GetCmd    *cobra.Command
	ListCmd   *cobra.Command

	addFlags    = common.NewSignerFlags()
	updateFlags = common.NewSignerFlags()
	removeFlags = common.NewSignerFlags()
	getFlags    = common.NewNodeFlags()
	listFlags   = common.NewNodeFlags()

	flagWatch   bool
	flagLimit   uint64
	flagReverse bool
	flagCursor  string
)

func checkAddress(c *cobra.Command, address string) {
	if !keypair.IsValidAddress(address) {
		common.PrintFlagsError(c, "<candidate address>", errors.New("not a public address"))
	}
}

// parseCandidateArgs returns the address and the optional name.
func parseCandidateArgs(args []string) (address, name string, err error) {
	address = args[0]
	if !keypair.IsValidAddress(address) {
		err = errors.New("<candidate address>: not a public address")
		return
	}

	if len(args) > 1 {
		name = args[1]
	}
	if !utf8.ValidString(name) {
		err = errors.New("<name>: not valid utf-8")
	}

	return
}

func init() {
	AddCmd = &cobra.Command{
		Use:   "add <candidate address> [<name>]",
		Short: "Add the candidate with zero votes; the existing one is overwritten and its votes are reset",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(c *cobra.Command, args []string) {
			address, name, err := parseCandidateArgs(args)
			if err != nil {
				common.PrintError(c, err)
			}
			addFlags.Submit(c, operation.NewAddCandidate(address, name))
		},
	}
	addFlags.AddFlags(AddCmd)

	UpdateCmd = &cobra.Command{
		Use:   "update <candidate address> <name>",
		Short: "Add the candidate or change the name of the existing one; the votes are kept",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			address, name, err := parseCandidateArgs(args)
			if err != nil {
				common.PrintError(c, err)
			}
			updateFlags.Submit(c, operation.NewAddOrUpdateCandidate(address, name))
		},
	}
	updateFlags.AddFlags(UpdateCmd)

	RemoveCmd = &cobra.Command{
		Use:   "remove <candidate address>",
		Short: "Remove the candidate with its votes",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			checkAddress(c, args[0])
			removeFlags.Submit(c, operation.NewRemoveCandidate(args[0]))
		},
	}
	removeFlags.AddFlags(RemoveCmd)

	GetCmd = &cobra.Command{
		Use:   "get <candidate address>",
		Short: "Print the candidate",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			checkAddress(c, args[0])
			cl := getFlags.Client(c)

			if !flagWatch {
				cd, err := cl.LoadCandidate(args[0])
				if err != nil {
					common.PrintError(c, err)
				}
				getFlags.Print(c, cd)
				return
			}

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				common.Interrupt(ctx.Done())
				cancel()
			}()

			err := cl.StreamCandidate(ctx, args[0], func(cd *client.Candidate, r *event.Record) {
				if cd != nil {
					getFlags.Print(c, cd)
					return
				}
				getFlags.Print(c, r)
			})
			cancel()
			if err != nil {
				common.PrintError(c, err)
			}
		},
	}
	getFlags.AddFlags(GetCmd)
	GetCmd.Flags().BoolVar(&flagWatch, "watch", false, "keep printing the changes")

	ListCmd = &cobra.Command{
		Use:   "list",
		Short: "Print the candidates",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			var queries []client.Q
			if flagLimit > 0 {
				queries = append(queries, client.Q{Key: client.QueryLimit, Value: strconv.FormatUint(flagLimit, 10)})
			}
			if flagReverse {
				queries = append(queries, client.Q{Key: client.QueryReverse, Value: "true"})
			}
			if len(flagCursor) > 0 {
				queries = append(queries, client.Q{Key: client.QueryCursor, Value: flagCursor})
			}

			page, err := listFlags.Client(c).LoadCandidates(queries...)
			if err != nil {
				common.PrintError(c, err)
			}
			listFlags.Print(c, page.Embedded.Records)
		},
	}
	listFlags.AddFlags(ListCmd)
	ListCmd.Flags().Uint64Var(&flagLimit, "limit", 0, "max number of candidates")
	ListCmd.Flags().BoolVar(&flagReverse, "reverse", false, "reverse order")
	ListCmd.Flags().StringVar(&flagCursor, "cursor", "", "start after this candidate address")
}
