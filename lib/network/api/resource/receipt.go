package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/tally/lib/runtime"
)

type Receipt struct {
	r *runtime.Receipt
}

func NewReceipt(r *runtime.Receipt) *Receipt {
	return &Receipt{r: r}
}

func (r Receipt) GetMap() hal.Entry {
	entry := hal.Entry{
		"hash":        r.r.Hash,
		"source":      r.r.Source,
		"sequence_id": r.r.SequenceID,
		"status":      r.r.Status,
		"operations":  r.r.Operations,
		"events":      r.r.Events,
		"created":     r.r.Created,
	}
	if r.r.Error != nil {
		entry["error"] = r.r.Error
	}

	return entry
}

func (r Receipt) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())

	seen := map[string]bool{}
	for _, record := range r.r.Events {
		target := record.Target()
		if len(target) < 1 || seen[target] {
			continue
		}
		seen[target] = true
		res.AddLink("candidates", hal.NewLink(strings.Replace(URLCandidate, "{id}", target, -1)))
	}

	return res
}

func (r Receipt) LinkSelf() string {
	return strings.Replace(URLTransactionByHash, "{id}", r.r.Hash, -1)
}
