package common

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/transaction/operation"
)

func TestSignerFlagsMakeTransaction(t *testing.T) {
	kp := keypair.Random()
	target := keypair.Random().Address()

	f := NewSignerFlags()
	f.NetworkID = "tally-test-network"
	f.SequenceID = 10

	tx, err := f.MakeTransaction(kp, operation.MustNewOperation(operation.NewVote(target)))
	require.NoError(t, err)
	require.Equal(t, kp.Address(), tx.Source())
	require.Equal(t, uint64(10), tx.B.SequenceID)
	require.Equal(t, tx.B.MakeHashString(), tx.GetHash())
	require.NotEmpty(t, tx.H.Signature)

	{ // random sequence id
		f.SequenceID = 0
		tx, err := f.MakeTransaction(kp, operation.MustNewOperation(operation.NewVote(target)))
		require.NoError(t, err)
		require.NotEqual(t, uint64(0), tx.B.SequenceID)
	}

	{ // empty network id
		f.NetworkID = ""
		_, err := f.MakeTransaction(kp, operation.MustNewOperation(operation.NewVote(target)))
		require.Error(t, err)
	}
}

func TestDefaultEncodes(t *testing.T) {
	for _, name := range []string{"json", "prettyjson", "yaml"} {
		_, ok := GetEncoder(name)
		require.True(t, ok, name)
	}

	_, ok := GetEncoder("xml")
	require.False(t, ok)
}
