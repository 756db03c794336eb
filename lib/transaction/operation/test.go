package operation

import (
	"boscoin.io/tally/lib/common/keypair"
)

func MakeTestVote() Operation {
	return MakeTestVoteTo(keypair.Random().Address())
}

func MakeTestVoteTo(address string) Operation {
	return MustNewOperation(NewVote(address))
}

func MakeTestAddCandidate(name string) Operation {
	return MustNewOperation(NewAddCandidate(keypair.Random().Address(), name))
}
