package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"boscoin.io/tally/cmd/tally/common"
	"boscoin.io/tally/lib/client"
	"boscoin.io/tally/lib/event"
)

var (
	eventsCmd   *cobra.Command
	eventsFlags = common.NewNodeFlags()

	flagEventType   string
	flagEventTarget string
	flagEventSource string
	flagEventTxHash string
)

func init() {
	eventsCmd = &cobra.Command{
		Use:   "events",
		Short: "Print the committed events until interrupted",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				common.Interrupt(ctx.Done())
				cancel()
			}()

			err := eventsFlags.Client(c).StreamEvents(ctx, func(r event.Record) {
				eventsFlags.Print(c, r)
			}, eventQueries()...)
			cancel()
			if err != nil {
				common.PrintError(c, err)
			}
		},
	}
	eventsFlags.AddFlags(eventsCmd)
	eventsCmd.Flags().StringVar(&flagEventType, "type", "", "event type")
	eventsCmd.Flags().StringVar(&flagEventTarget, "target", "", "candidate address")
	eventsCmd.Flags().StringVar(&flagEventSource, "source", "", "transaction source address")
	eventsCmd.Flags().StringVar(&flagEventTxHash, "txhash", "", "transaction hash")

	rootCmd.AddCommand(eventsCmd)
}

func eventQueries() (queries []client.Q) {
	for key, value := range map[client.QueryKey]string{
		client.QueryType:   flagEventType,
		client.QueryTarget: flagEventTarget,
		client.QuerySource: flagEventSource,
		client.QueryTxHash: flagEventTxHash,
	} {
		if len(value) > 0 {
			queries = append(queries, client.Q{Key: key, Value: value})
		}
	}

	return
}
