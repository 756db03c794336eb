package candidate

import (
	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/storage"
)

// TestMakeCandidate saves new candidate with random address.
func TestMakeCandidate(st *storage.LevelDBBackend, name string, votes common.VoteCount) *Candidate {
	c := NewCandidate(keypair.Random().Address(), name)
	c.Votes = votes
	if err := c.Save(st); err != nil {
		panic(err)
	}

	return c
}
