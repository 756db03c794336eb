package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type hashTarget struct {
	Source    string
	Candidate string
	Votes     uint32
}

func TestMakeObjectHash(t *testing.T) {
	a := hashTarget{Source: "a", Candidate: "b", Votes: 1}
	b := hashTarget{Source: "a", Candidate: "b", Votes: 1}
	c := hashTarget{Source: "a", Candidate: "b", Votes: 2}

	require.Equal(t, MustMakeObjectHash(a), MustMakeObjectHash(b))
	require.NotEqual(t, MustMakeObjectHash(a), MustMakeObjectHash(c))
	require.Equal(t, 32, len(MustMakeObjectHash(a)))
	require.Equal(t, MakeObjectHashString(a), MakeObjectHashString(b))
}
