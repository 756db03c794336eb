package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"boscoin.io/tally/lib/auth"
	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/transaction/operation"
)

type TestSuite struct {
	suite.Suite
	conf common.Config
}

func (suite *TestSuite) SetupTest() {
	suite.conf = common.NewTestConfig()
	suite.conf.OpsLimit = 10
}

func (suite *TestSuite) TestLoadTransaction() {
	_, tx := TestMakeTransaction(suite.conf.NetworkID, 3)

	b, err := tx.Serialize()
	require.NoError(suite.T(), err)

	var tx2 Transaction
	require.NoError(suite.T(), json.Unmarshal(b, &tx2))
	require.Equal(suite.T(), tx, tx2)
	require.Equal(suite.T(), tx.B.MakeHashString(), tx2.B.MakeHashString())
}

func (suite *TestSuite) TestIsWellFormed() {
	_, tx := TestMakeTransaction(suite.conf.NetworkID, 1)
	require.NoError(suite.T(), tx.IsWellFormed(suite.conf))
}

func (suite *TestSuite) TestIsWellFormedBadHeader() {
	{ // type
		_, tx := TestMakeTransaction(suite.conf.NetworkID, 1)
		tx.T = "payment"
		require.True(suite.T(), errors.Is(tx.IsWellFormed(suite.conf), errors.InvalidOperation))
	}

	{ // version
		_, tx := TestMakeTransaction(suite.conf.NetworkID, 1)
		tx.H.Version = "2"
		require.True(suite.T(), errors.Is(tx.IsWellFormed(suite.conf), errors.InvalidMessageVersion))
	}

	{ // modified body
		_, tx := TestMakeTransaction(suite.conf.NetworkID, 1)
		tx.B.SequenceID++
		require.True(suite.T(), errors.Is(tx.IsWellFormed(suite.conf), errors.InvalidTransactionHash))
	}
}

func (suite *TestSuite) TestIsWellFormedOperations() {
	{ // empty
		_, tx := TestMakeTransaction(suite.conf.NetworkID, 1)
		tx.B.Operations = nil
		tx.H.Hash = tx.B.MakeHashString()
		require.Equal(suite.T(), errors.TransactionEmptyOperations, tx.IsWellFormed(suite.conf))

		_, err := NewTransaction(keypair.Random().Address(), 0)
		require.Equal(suite.T(), errors.TransactionEmptyOperations, err)
	}

	{ // over limit
		_, tx := TestMakeTransaction(suite.conf.NetworkID, suite.conf.OpsLimit+1)
		require.True(suite.T(), errors.Is(tx.IsWellFormed(suite.conf), errors.TransactionHasOverMaxOperations))

		_, tx = TestMakeTransaction(suite.conf.NetworkID, suite.conf.OpsLimit)
		require.NoError(suite.T(), tx.IsWellFormed(suite.conf))
	}

	{ // duplicated
		candidate := keypair.Random().Address()
		tx := TestMakeTransactionWithKeypair(
			suite.conf.NetworkID,
			keypair.Random(),
			operation.MakeTestVoteTo(candidate),
			operation.MakeTestVoteTo(candidate),
		)
		require.True(suite.T(), errors.Is(tx.IsWellFormed(suite.conf), errors.DuplicatedOperation))
	}

	{ // different types for same candidate
		candidate := keypair.Random().Address()
		tx := TestMakeTransactionWithKeypair(
			suite.conf.NetworkID,
			keypair.Random(),
			operation.MustNewOperation(operation.NewAddCandidate(candidate, "")),
			operation.MakeTestVoteTo(candidate),
			operation.MustNewOperation(operation.NewRemoveCandidate(candidate)),
		)
		require.NoError(suite.T(), tx.IsWellFormed(suite.conf))
	}
}

func (suite *TestSuite) TestOrigin() {
	gate := auth.NewGate(suite.conf.NetworkID)

	kp, tx := TestMakeTransaction(suite.conf.NetworkID, 1)
	caller, err := gate.Authenticate(tx.Origin())
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), kp.Address(), caller.Address)

	{ // signed by other network
		tx.Sign(kp, []byte("other-network"))
		_, err = gate.Authenticate(tx.Origin())
		require.True(suite.T(), errors.Is(err, errors.Unauthorized))
	}

	{ // the header hash is also modified with the body
		tx.Sign(kp, suite.conf.NetworkID)
		tx.B.Operations = append(tx.B.Operations, operation.MakeTestVote())
		tx.H.Hash = tx.B.MakeHashString()
		_, err = gate.Authenticate(tx.Origin())
		require.True(suite.T(), errors.Is(err, errors.Unauthorized))
	}

	{ // not signed
		_, tx := TestMakeTransaction(suite.conf.NetworkID, 1)
		tx.H.Signature = ""
		_, err = gate.Authenticate(tx.Origin())
		require.True(suite.T(), errors.Is(err, errors.Unauthorized))
	}
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
