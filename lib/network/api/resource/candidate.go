package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/tally/lib/candidate"
	"boscoin.io/tally/lib/common/observer"
)

type Candidate struct {
	c *candidate.Candidate
}

func NewCandidate(c *candidate.Candidate) *Candidate {
	return &Candidate{c: c}
}

func (c Candidate) GetMap() hal.Entry {
	return hal.Entry{
		"address": c.c.Address,
		"name":    c.c.Name,
		"votes":   c.c.Votes,
	}
}

func (c Candidate) Resource() *hal.Resource {
	r := hal.NewResource(c, c.LinkSelf())
	r.AddLink(
		"events",
		hal.NewLink(URLEvents+"?"+observer.ConditionTarget+"="+c.c.Address),
	)
	return r
}

func (c Candidate) LinkSelf() string {
	return strings.Replace(URLCandidate, "{id}", c.c.Address, -1)
}
