package operation

import (
	"boscoin.io/tally/lib/common"
)

// AddCandidate registers the candidate; the existing one is overwritten with
// zero votes.
type AddCandidate struct {
	Candidate string `json:"candidate"`
	Name      string `json:"name"`
}

func NewAddCandidate(candidate, name string) AddCandidate {
	return AddCandidate{Candidate: candidate, Name: name}
}

func (o AddCandidate) IsWellFormed(conf common.Config) (err error) {
	if err = checkCandidateAddress(o.Candidate); err != nil {
		return
	}

	return checkCandidateName(o.Name, conf)
}

func (o AddCandidate) TargetAddress() string {
	return o.Candidate
}

// AddOrUpdateCandidate replaces the name and keeps the votes of the existing
// candidate.
type AddOrUpdateCandidate struct {
	Candidate string `json:"candidate"`
	Name      string `json:"name"`
}

func NewAddOrUpdateCandidate(candidate, name string) AddOrUpdateCandidate {
	return AddOrUpdateCandidate{Candidate: candidate, Name: name}
}

func (o AddOrUpdateCandidate) IsWellFormed(conf common.Config) (err error) {
	if err = checkCandidateAddress(o.Candidate); err != nil {
		return
	}

	return checkCandidateName(o.Name, conf)
}

func (o AddOrUpdateCandidate) TargetAddress() string {
	return o.Candidate
}

type RemoveCandidate struct {
	Candidate string `json:"candidate"`
}

func NewRemoveCandidate(candidate string) RemoveCandidate {
	return RemoveCandidate{Candidate: candidate}
}

func (o RemoveCandidate) IsWellFormed(common.Config) error {
	return checkCandidateAddress(o.Candidate)
}

func (o RemoveCandidate) TargetAddress() string {
	return o.Candidate
}
