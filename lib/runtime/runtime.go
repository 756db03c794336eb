// Package runtime applies the transactions one by one. Each transaction
// runs in its own leveldb transaction: all the operations are committed
// together or nothing is written, and the events reach the sinks only after
// the commit.
package runtime

import (
	"sync"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/metrics"
	"boscoin.io/tally/lib/storage"
	"boscoin.io/tally/lib/transaction"
	"boscoin.io/tally/lib/voting"
)

var log logging.Logger = logging.New("module", "runtime")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

type Runtime struct {
	sync.Mutex

	// emitting keeps the committed events in the commit order; it is taken
	// before the state lock is released.
	emitting sync.Mutex

	st     *storage.LevelDBBackend
	conf   common.Config
	voting *voting.Voting
	sink   event.Sink
}

// NewRuntime returns the runtime; the committed events are emitted to the
// given sinks in order.
func NewRuntime(st *storage.LevelDBBackend, conf common.Config, sinks ...event.Sink) *Runtime {
	return &Runtime{
		st:     st,
		conf:   conf,
		voting: voting.NewVoting(conf),
		sink:   event.Sinks(sinks),
	}
}

func (r *Runtime) Storage() *storage.LevelDBBackend {
	return r.st
}

func (r *Runtime) Config() common.Config {
	return r.conf
}

// Apply checks and applies the transaction. On failure the error is
// returned with the failed receipt and the storage is not changed. The
// committed events are emitted in the commit order after the state lock is
// released.
func (r *Runtime) Apply(tx transaction.Transaction) (*Receipt, error) {
	begin := time.Now()

	r.Lock()
	receipt, err := r.apply(tx)
	if err != nil {
		r.Unlock()

		log.Debug("transaction failed", "hash", tx.GetHash(), "source", tx.Source(), "error", err)
		metrics.Voting.AddTransaction(metrics.TransactionStatusFailed, begin)
		return NewFailedReceipt(tx, err), err
	}

	r.emitting.Lock()
	r.Unlock()

	for _, record := range receipt.Events {
		r.sink.Emit(record)
	}
	r.emitting.Unlock()

	metrics.Voting.AddTransaction(metrics.TransactionStatusSucceeded, begin)
	log.Debug(
		"transaction applied",
		"hash", tx.GetHash(),
		"source", tx.Source(),
		"operations", len(tx.B.Operations),
		"events", len(receipt.Events),
		"elapsed", time.Since(begin),
	)

	return receipt, nil
}

func (r *Runtime) apply(tx transaction.Transaction) (receipt *Receipt, err error) {
	if err = tx.IsWellFormed(r.conf); err != nil {
		return
	}

	var exists bool
	if exists, err = ExistsReceipt(r.st, tx.GetHash()); err != nil {
		return
	} else if exists {
		err = errors.TransactionAlreadyExists.Clone().SetData("hash", tx.GetHash())
		return
	}

	var ts *storage.LevelDBBackend
	if ts, err = r.st.OpenTransaction(); err != nil {
		return
	}

	buffer := event.NewBuffer()
	ctx := voting.Context{
		Origin:  tx.Origin(),
		Storage: ts,
		Events:  buffer,
	}

	for i, op := range tx.B.Operations {
		if err = r.voting.Apply(ctx, op); err != nil {
			ts.Discard()
			buffer.Reset()
			err = withOperationIndex(err, i)
			return
		}
	}

	receipt = NewReceipt(tx, buffer.Records(tx.GetHash(), tx.Source()))
	if err = receipt.Save(ts); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		log.Error("failed to commit transaction", "hash", tx.GetHash(), "error", err)
		ts.Discard()
		return
	}

	for _, op := range tx.B.Operations {
		metrics.Voting.AddOperation(string(op.H.Type))
	}

	return
}

func withOperationIndex(err error, i int) error {
	e, ok := err.(*errors.Error)
	if !ok {
		return err
	}

	return e.Clone().SetData("operation", i)
}
