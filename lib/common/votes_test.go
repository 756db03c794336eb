package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/tally/lib/errors"
)

func TestVoteCountAdd(t *testing.T) {
	v, err := VoteCount(0).Add(1)
	require.NoError(t, err)
	require.Equal(t, VoteCount(1), v)

	v, err = VoteCount(MaxVoteCount - 1).Add(1)
	require.NoError(t, err)
	require.Equal(t, MaxVoteCount, v)
}

func TestVoteCountAddOverflow(t *testing.T) {
	v, err := MaxVoteCount.Add(1)
	require.Error(t, err)
	require.Equal(t, errors.StorageOverflow.Code, err.(*errors.Error).Code)
	require.Equal(t, MaxVoteCount, v)
}

func TestVoteCountJSON(t *testing.T) {
	b, err := json.Marshal(VoteCount(4294967295))
	require.NoError(t, err)
	require.Equal(t, `"4294967295"`, string(b))

	var v VoteCount
	require.NoError(t, json.Unmarshal(b, &v))
	require.Equal(t, MaxVoteCount, v)

	require.Error(t, json.Unmarshal([]byte(`"4294967296"`), &v))
	require.Error(t, json.Unmarshal([]byte(`"-1"`), &v))
}
