package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	e := StorageOverflow
	e0 := StorageOverflow.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))
	require.Equal(t, e.Code, e0.Code)

	e0.SetData("votes", "4294967295")
	require.Empty(t, StorageOverflow.Data)
	require.Equal(t, "4294967295", e0.Data["votes"])
}

func TestErrorsIs(t *testing.T) {
	e := Unauthorized.Clone().SetData("reason", "empty signature")
	require.True(t, Is(e, Unauthorized))
	require.False(t, Is(e, StorageOverflow))
	require.False(t, Is(fmt.Errorf("unauthorized"), Unauthorized))
	require.False(t, Is(nil, Unauthorized))
}

func TestErrorsJSON(t *testing.T) {
	require.Equal(t, `{"code":120,"message":"origin is not signed"}`, Unauthorized.Error())
}
