// Package voting keeps the candidate registry and the vote tally. Every
// operation authenticates the origin first and emits exactly one event
// after it succeeds; nothing is emitted on failure.
package voting

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/tally/lib/auth"
	"boscoin.io/tally/lib/candidate"
	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/storage"
	"boscoin.io/tally/lib/transaction/operation"
)

var log logging.Logger = logging.New("module", "voting")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

// Context is given to each call. `Storage` is usually the leveldb
// transaction opened by the runtime; the writes of failed call are
// discarded by the caller.
type Context struct {
	Origin  auth.Origin
	Storage *storage.LevelDBBackend
	Events  event.Sink
}

type Voting struct {
	gate auth.Gate
	conf common.Config
}

func NewVoting(conf common.Config) *Voting {
	return &Voting{
		gate: auth.NewGate(conf.NetworkID),
		conf: conf,
	}
}

// AddCandidate registers the candidate with zero votes. The existing
// candidate is overwritten, so adding again resets the votes.
func (v *Voting) AddCandidate(ctx Context, address, name string) (err error) {
	if _, err = v.gate.Authenticate(ctx.Origin); err != nil {
		return
	}

	c := candidate.NewCandidate(address, name)
	if err = c.Save(ctx.Storage); err != nil {
		return
	}

	ctx.Events.Emit(event.CandidateAdded{Candidate: address})

	return
}

// AddOrUpdateCandidate replaces the name of the existing candidate and keeps
// the votes; if not exists, it is added with zero votes.
func (v *Voting) AddOrUpdateCandidate(ctx Context, address, name string) (err error) {
	if _, err = v.gate.Authenticate(ctx.Origin); err != nil {
		return
	}

	var c *candidate.Candidate
	if c, err = candidate.GetCandidate(ctx.Storage, address); err != nil {
		if !errors.Is(err, errors.CandidateDoesNotExist) {
			return
		}
		c = candidate.NewCandidate(address, name)
	}
	c.Name = name

	if err = c.Save(ctx.Storage); err != nil {
		return
	}

	ctx.Events.Emit(event.CandidateAddedOrUpdated{Candidate: address})

	return
}

// RemoveCandidate removes the candidate. Removing the unknown candidate
// succeeds and still emits `CandidateRemoved`.
func (v *Voting) RemoveCandidate(ctx Context, address string) (err error) {
	if _, err = v.gate.Authenticate(ctx.Origin); err != nil {
		return
	}

	var removed bool
	if removed, err = candidate.RemoveCandidate(ctx.Storage, address); err != nil {
		return
	}
	if !removed {
		log.Debug("candidate to remove does not exist", "candidate", address)
	}

	ctx.Events.Emit(event.CandidateRemoved{Candidate: address})

	return
}

// Vote increases the votes of candidate by one. When the votes reach
// `common.MaxVoteCount`, `errors.StorageOverflow` is returned and nothing
// is written.
func (v *Voting) Vote(ctx Context, address string) (err error) {
	var caller auth.Caller
	if caller, err = v.gate.Authenticate(ctx.Origin); err != nil {
		return
	}

	var c *candidate.Candidate
	if c, err = candidate.GetCandidate(ctx.Storage, address); err != nil {
		if !errors.Is(err, errors.CandidateDoesNotExist) || v.conf.RequireRegisteredCandidate {
			return
		}

		// NOTE voting for the unknown candidate registers it without name;
		// set `RequireRegisteredCandidate` to reject it.
		c = candidate.NewCandidate(address, "")
	}

	if err = c.IncreaseVotes(); err != nil {
		log.Debug("failed to vote", "candidate", address, "votes", c.Votes, "error", err)
		return
	}

	if err = c.Save(ctx.Storage); err != nil {
		return
	}

	ctx.Events.Emit(event.Voted{Who: caller.Address, Candidate: address})

	return
}

// Apply runs the operation.
func (v *Voting) Apply(ctx Context, op operation.Operation) error {
	switch op.H.Type {
	case operation.TypeVote:
		pop, ok := op.B.(operation.Vote)
		if !ok {
			return errors.UnknownOperationType
		}
		return v.Vote(ctx, pop.Candidate)
	case operation.TypeAddCandidate:
		pop, ok := op.B.(operation.AddCandidate)
		if !ok {
			return errors.UnknownOperationType
		}
		return v.AddCandidate(ctx, pop.Candidate, pop.Name)
	case operation.TypeAddOrUpdateCandidate:
		pop, ok := op.B.(operation.AddOrUpdateCandidate)
		if !ok {
			return errors.UnknownOperationType
		}
		return v.AddOrUpdateCandidate(ctx, pop.Candidate, pop.Name)
	case operation.TypeRemoveCandidate:
		pop, ok := op.B.(operation.RemoveCandidate)
		if !ok {
			return errors.UnknownOperationType
		}
		return v.RemoveCandidate(ctx, pop.Candidate)
	default:
		return errors.UnknownOperationType
	}
}
