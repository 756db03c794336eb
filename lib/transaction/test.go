package transaction

import (
	"math/rand"

	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/transaction/operation"
)

// TestMakeTransaction makes the signed transaction which has `n` votes for
// random candidates.
func TestMakeTransaction(networkID []byte, n int) (kp *keypair.Full, tx Transaction) {
	kp = keypair.Random()

	var ops []operation.Operation
	for i := 0; i < n; i++ {
		ops = append(ops, operation.MakeTestVote())
	}

	tx = TestMakeTransactionWithKeypair(networkID, kp, ops...)

	return
}

func TestMakeTransactionWithKeypair(networkID []byte, kp *keypair.Full, ops ...operation.Operation) (tx Transaction) {
	tx, err := NewTransaction(kp.Address(), rand.Uint64(), ops...)
	if err != nil {
		panic(err)
	}
	tx.Sign(kp, networkID)

	return
}
