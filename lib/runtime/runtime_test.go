package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/tally/lib/candidate"
	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/storage"
	"boscoin.io/tally/lib/transaction"
	"boscoin.io/tally/lib/transaction/operation"
)

type testRuntime struct {
	*Runtime
	conf    common.Config
	emitted []event.Event
}

func newTestRuntime(conf common.Config) *testRuntime {
	tr := &testRuntime{conf: conf}
	tr.Runtime = NewRuntime(
		storage.NewTestStorage(),
		conf,
		event.SinkFunc(func(e event.Event) { tr.emitted = append(tr.emitted, e) }),
	)

	return tr
}

func (tr *testRuntime) apply(t *testing.T, kp *keypair.Full, ops ...operation.Operation) (*Receipt, error) {
	tx := transaction.TestMakeTransactionWithKeypair(tr.conf.NetworkID, kp, ops...)
	return tr.Apply(tx)
}

func TestRuntimeApply(t *testing.T) {
	tr := newTestRuntime(common.NewTestConfig())
	defer tr.Storage().Close()

	user := keypair.Random()
	a := keypair.Random().Address()

	receipt, err := tr.apply(t, user,
		operation.MustNewOperation(operation.NewAddCandidate(a, "alice")),
		operation.MustNewOperation(operation.NewVote(a)),
	)
	require.NoError(t, err)
	require.True(t, receipt.IsSucceeded())
	require.Equal(t, 2, receipt.Operations)
	require.Equal(t, 2, len(receipt.Events))
	require.Equal(t, event.Voted{Who: user.Address(), Candidate: a}, receipt.Events[1].Body)

	c, err := candidate.GetCandidate(tr.Storage(), a)
	require.NoError(t, err)
	require.Equal(t, common.VoteCount(1), c.Votes)

	require.Equal(t, 2, len(tr.emitted))
	r := tr.emitted[0].(event.Record)
	require.Equal(t, receipt.Hash, r.TxHash)
	require.Equal(t, user.Address(), r.Source)

	stored, err := GetReceipt(tr.Storage(), receipt.Hash)
	require.NoError(t, err)
	require.Equal(t, receipt.Hash, stored.Hash)
	require.Equal(t, receipt.Events, stored.Events)
}

func TestRuntimeFailedOperationDiscardsAll(t *testing.T) {
	tr := newTestRuntime(common.NewTestConfig())
	defer tr.Storage().Close()

	full := candidate.TestMakeCandidate(tr.Storage(), "full", common.MaxVoteCount)
	a := keypair.Random().Address()

	tx := transaction.TestMakeTransactionWithKeypair(
		tr.conf.NetworkID,
		keypair.Random(),
		operation.MustNewOperation(operation.NewAddCandidate(a, "alice")),
		operation.MustNewOperation(operation.NewVote(full.Address)),
	)
	receipt, err := tr.Apply(tx)
	require.True(t, errors.Is(err, errors.StorageOverflow))
	require.Equal(t, 1, err.(*errors.Error).Data["operation"])
	require.False(t, receipt.IsSucceeded())
	require.True(t, errors.Is(receipt.Error, errors.StorageOverflow))

	exists, err := candidate.ExistsCandidate(tr.Storage(), a)
	require.NoError(t, err)
	require.False(t, exists)

	fetched, err := candidate.GetCandidate(tr.Storage(), full.Address)
	require.NoError(t, err)
	require.Equal(t, common.MaxVoteCount, fetched.Votes)

	require.Empty(t, tr.emitted)

	_, err = GetReceipt(tr.Storage(), tx.GetHash())
	require.True(t, errors.Is(err, errors.TransactionNotFound))

	// StorageOverflow itself is not modified
	require.Empty(t, errors.StorageOverflow.Data)
}

func TestRuntimeReplay(t *testing.T) {
	tr := newTestRuntime(common.NewTestConfig())
	defer tr.Storage().Close()

	a := keypair.Random().Address()
	tx := transaction.TestMakeTransactionWithKeypair(
		tr.conf.NetworkID,
		keypair.Random(),
		operation.MustNewOperation(operation.NewVote(a)),
	)

	_, err := tr.Apply(tx)
	require.NoError(t, err)

	_, err = tr.Apply(tx)
	require.True(t, errors.Is(err, errors.TransactionAlreadyExists))

	c, err := candidate.GetCandidate(tr.Storage(), a)
	require.NoError(t, err)
	require.Equal(t, common.VoteCount(1), c.Votes)
	require.Equal(t, 1, len(tr.emitted))
}

func TestRuntimeUnauthenticated(t *testing.T) {
	tr := newTestRuntime(common.NewTestConfig())
	defer tr.Storage().Close()

	kp := keypair.Random()
	a := keypair.Random().Address()

	{ // not signed
		tx, err := transaction.NewTransaction(kp.Address(), 1, operation.MustNewOperation(operation.NewVote(a)))
		require.NoError(t, err)

		_, err = tr.Apply(tx)
		require.True(t, errors.Is(err, errors.Unauthorized))
	}

	{ // signed by other
		tx, err := transaction.NewTransaction(kp.Address(), 2, operation.MustNewOperation(operation.NewVote(a)))
		require.NoError(t, err)
		tx.Sign(keypair.Random(), tr.conf.NetworkID)

		_, err = tr.Apply(tx)
		require.True(t, errors.Is(err, errors.Unauthorized))
	}

	exists, err := candidate.ExistsCandidate(tr.Storage(), a)
	require.NoError(t, err)
	require.False(t, exists)
	require.Empty(t, tr.emitted)
}

func TestRuntimeNotWellFormed(t *testing.T) {
	tr := newTestRuntime(common.NewTestConfig())
	defer tr.Storage().Close()

	name := make([]byte, tr.conf.MaxNameLength+1)
	for i := range name {
		name[i] = 'a'
	}

	_, err := tr.apply(t, keypair.Random(),
		operation.MustNewOperation(operation.NewAddCandidate(keypair.Random().Address(), string(name))),
	)
	require.True(t, errors.Is(err, errors.NameTooLong))
	require.Empty(t, tr.emitted)
}

func TestRuntimeInvalidUTF8Name(t *testing.T) {
	tr := newTestRuntime(common.NewTestConfig())
	defer tr.Storage().Close()

	_, err := tr.apply(t, keypair.Random(),
		operation.MustNewOperation(operation.NewAddCandidate(keypair.Random().Address(), "\xff\xfe")),
	)
	require.True(t, errors.Is(err, errors.InvalidCandidateName))
	require.Empty(t, tr.emitted)
}
