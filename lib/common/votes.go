package common

import (
	"encoding/json"
	"strconv"

	"boscoin.io/tally/lib/errors"
)

// VoteCount is the number of votes a candidate received.
//
// It is stored as a decimal string in JSON, the same way as it is shown in the
// API output.
type VoteCount uint32

func (v VoteCount) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// Add is overflow-checked; when the sum exceeds `MaxVoteCount`,
// `errors.StorageOverflow` is returned with the unchanged count.
func (v VoteCount) Add(n VoteCount) (VoteCount, error) {
	if MaxVoteCount-v < n {
		return v, errors.StorageOverflow.Clone().SetData("votes", v.String())
	}

	return v + n, nil
}

func (v VoteCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *VoteCount) UnmarshalJSON(b []byte) (err error) {
	var s string
	if err = json.Unmarshal(b, &s); err != nil {
		return
	}

	var p VoteCount
	if p, err = ParseVoteCount(s); err != nil {
		return
	}

	*v = p
	return
}

func ParseVoteCount(s string) (VoteCount, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.InvalidVoteCount.Clone().SetData("value", s)
	}

	return VoteCount(n), nil
}
