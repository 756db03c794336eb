package operation

import (
	"boscoin.io/tally/lib/common"
)

type Vote struct {
	Candidate string `json:"candidate"`
}

func NewVote(candidate string) Vote {
	return Vote{Candidate: candidate}
}

func (o Vote) IsWellFormed(common.Config) error {
	return checkCandidateAddress(o.Candidate)
}

func (o Vote) TargetAddress() string {
	return o.Candidate
}
