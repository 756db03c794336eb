package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"boscoin.io/tally/lib/candidate"
	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/storage"
	"boscoin.io/tally/lib/transaction"
	"boscoin.io/tally/lib/transaction/operation"
)

func TestRuntimeConcurrentVotes(t *testing.T) {
	conf := common.NewTestConfig()
	buffer := event.NewBuffer()
	rt := NewRuntime(storage.NewTestStorage(), conf, buffer)
	defer rt.Storage().Close()

	a := keypair.Random().Address()
	_, err := rt.Apply(transaction.TestMakeTransactionWithKeypair(
		conf.NetworkID,
		keypair.Random(),
		operation.MustNewOperation(operation.NewAddCandidate(a, "alice")),
	))
	require.NoError(t, err)

	voters := 50

	var g errgroup.Group
	for i := 0; i < voters; i++ {
		g.Go(func() error {
			tx := transaction.TestMakeTransactionWithKeypair(
				conf.NetworkID,
				keypair.Random(),
				operation.MustNewOperation(operation.NewVote(a)),
			)
			_, err := rt.Apply(tx)
			return err
		})
	}
	require.NoError(t, g.Wait())

	c, err := candidate.GetCandidate(rt.Storage(), a)
	require.NoError(t, err)
	require.Equal(t, common.VoteCount(voters), c.Votes)
	require.Equal(t, voters+1, buffer.Len())
}
