package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GianlucaGuarini/go-observable"
	"github.com/stretchr/testify/require"

	"boscoin.io/tally/lib/candidate"
	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/common/keypair"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/network/api"
	"boscoin.io/tally/lib/runtime"
	"boscoin.io/tally/lib/storage"
	"boscoin.io/tally/lib/transaction"
	"boscoin.io/tally/lib/transaction/operation"
)

func prepareNode(t *testing.T) (*httptest.Server, *runtime.Runtime, *Client) {
	o := observable.New()
	rt := runtime.NewRuntime(storage.NewTestStorage(), common.NewTestConfig(), event.NewObserverSink(o))

	apiHandler, err := api.NewNetworkHandlerAPI(rt, api.UrlPathPrefixAPI)
	require.NoError(t, err)
	apiHandler.SetObservable(o)

	ts := httptest.NewServer(api.NewRouter(apiHandler, false))

	c, err := NewClient(ts.URL, nil)
	require.NoError(t, err)

	return ts, rt, c
}

func TestProblemCode(t *testing.T) {
	require.Equal(t, uint(120), Problem{Type: "https://boscoin.io/tally/problem/120"}.Code())
	require.Equal(t, uint(0), Problem{Type: "about:blank"}.Code())
	require.Equal(t, uint(0), Problem{}.Code())
}

func TestClientNodeInfo(t *testing.T) {
	ts, rt, c := prepareNode(t)
	defer rt.Storage().Close()
	defer ts.Close()

	info, err := c.LoadNodeInfo()
	require.NoError(t, err)
	require.Equal(t, string(rt.Config().NetworkID), info.NetworkID)
	require.Equal(t, rt.Config().MaxNameLength, info.MaxNameLength)
}

func TestClientSubmitTransaction(t *testing.T) {
	ts, rt, c := prepareNode(t)
	defer rt.Storage().Close()
	defer ts.Close()

	kp := keypair.Random()
	target := keypair.Random().Address()
	tx := transaction.TestMakeTransactionWithKeypair(
		rt.Config().NetworkID,
		kp,
		operation.MustNewOperation(operation.NewAddCandidate(target, "A")),
		operation.MustNewOperation(operation.NewVote(target)),
	)

	receipt, err := c.SubmitTransaction(tx)
	require.NoError(t, err)
	require.Equal(t, tx.GetHash(), receipt.Hash)
	require.Equal(t, runtime.ReceiptStatusSucceeded, receipt.Status)
	require.Equal(t, 2, len(receipt.Events))
	require.Equal(t, event.Voted{Who: kp.Address(), Candidate: target}, receipt.Events[1].Body)

	loaded, err := c.LoadReceipt(tx.GetHash())
	require.NoError(t, err)
	require.Equal(t, receipt.Hash, loaded.Hash)

	cd, err := c.LoadCandidate(target)
	require.NoError(t, err)
	require.Equal(t, "A", cd.Name)
	require.Equal(t, common.VoteCount(1), cd.Votes)

	{ // replay
		_, err := c.SubmitTransaction(tx)
		require.Error(t, err)
		e, ok := err.(Error)
		require.True(t, ok)
		require.Equal(t, http.StatusConflict, e.Problem.Status)
		require.Equal(t, errors.TransactionAlreadyExists.Code, e.Code())
	}

	{ // unknown receipt
		_, err := c.LoadReceipt("unknown")
		e, ok := err.(Error)
		require.True(t, ok)
		require.Equal(t, errors.TransactionNotFound.Code, e.Code())
	}
}

func TestClientLoadCandidates(t *testing.T) {
	ts, rt, c := prepareNode(t)
	defer rt.Storage().Close()
	defer ts.Close()

	for i := 0; i < 3; i++ {
		candidate.TestMakeCandidate(rt.Storage(), "", common.VoteCount(i))
	}

	page, err := c.LoadCandidates(Q{Key: QueryLimit, Value: "2"})
	require.NoError(t, err)
	require.Equal(t, 2, len(page.Embedded.Records))
	require.NotEmpty(t, page.Links.Next.Href)

	page, err = c.LoadCandidates()
	require.NoError(t, err)
	require.Equal(t, 3, len(page.Embedded.Records))
}

func TestClientStreamEvents(t *testing.T) {
	ts, rt, c := prepareNode(t)
	defer rt.Storage().Close()
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan event.Record)
	errChan := make(chan error, 1)
	go func() {
		errChan <- c.StreamEvents(ctx, func(r event.Record) {
			received <- r
		}, Q{Key: QueryType, Value: string(event.TypeCandidateAdded)})
	}()

	target := keypair.Random().Address()
	kp := keypair.Random()

	// the stream may not be subscribed yet, so submit until an event comes.
	var r event.Record
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)
loop:
	for {
		select {
		case r = <-received:
			break loop
		case <-ticker.C:
			tx := transaction.TestMakeTransactionWithKeypair(
				rt.Config().NetworkID,
				kp,
				operation.MustNewOperation(operation.NewAddCandidate(target, "A")),
			)
			_, err := c.SubmitTransaction(tx)
			require.NoError(t, err)
		case <-timeout:
			t.Fatal("no event received")
		}
	}

	require.Equal(t, event.TypeCandidateAdded, r.Type)
	require.Equal(t, target, r.Target())
	require.Equal(t, kp.Address(), r.Source)

	cancel()
	go func() {
		for range received {
		}
	}()
	require.NoError(t, <-errChan)
}
