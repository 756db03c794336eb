package transaction

import (
	"fmt"

	"boscoin.io/tally/lib/common"
	"boscoin.io/tally/lib/errors"
)

type Checker struct {
	common.DefaultChecker

	Conf        common.Config
	Transaction Transaction
}

func CheckTransactionType(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if checker.Transaction.T != TypeTransaction {
		return errors.InvalidOperation.Clone().SetData("T", checker.Transaction.T)
	}

	return nil
}

func CheckTransactionVersion(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if checker.Transaction.H.Version != TransactionVersionV1 {
		return errors.InvalidMessageVersion.Clone().SetData("version", checker.Transaction.H.Version)
	}

	return nil
}

func CheckTransactionHash(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if checker.Transaction.H.Hash != checker.Transaction.B.MakeHashString() {
		return errors.InvalidTransactionHash.Clone().SetData("hash", checker.Transaction.H.Hash)
	}

	return nil
}

func CheckTransactionEmptyOperations(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if len(checker.Transaction.B.Operations) < 1 {
		return errors.TransactionEmptyOperations
	}

	return nil
}

func CheckTransactionOverOperationsLimit(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if len(checker.Transaction.B.Operations) > checker.Conf.OpsLimit {
		return errors.TransactionHasOverMaxOperations.Clone().SetData("limit", checker.Conf.OpsLimit)
	}

	return nil
}

// CheckTransactionOperations checks each operation; the operations which
// have same type and same target can not be in one transaction.
func CheckTransactionOperations(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	var hashes []string
	for _, op := range checker.Transaction.B.Operations {
		if err = op.IsWellFormed(checker.Conf); err != nil {
			return
		}

		u := fmt.Sprintf("%s-%s", op.H.Type, op.B.TargetAddress())
		if _, found := common.InStringArray(hashes, u); found {
			return errors.DuplicatedOperation.Clone().SetData("operation", u)
		}
		hashes = append(hashes, u)
	}

	return
}
