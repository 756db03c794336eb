package httputils

import (
	"net/http"

	"boscoin.io/tally/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	return r.Header.Get("Accept") == "text/event-stream"
}

var ErrorsToStatus = map[uint]int{
	errors.StorageRecordDoesNotExist.Code: http.StatusNotFound,
	errors.NotImplemented.Code:            http.StatusNotImplemented,

	errors.BadPublicAddress.Code:                http.StatusBadRequest,
	errors.TransactionEmptyOperations.Code:      http.StatusBadRequest,
	errors.TransactionHasOverMaxOperations.Code: http.StatusBadRequest,
	errors.InvalidTransactionHash.Code:          http.StatusBadRequest,
	errors.InvalidOperation.Code:                http.StatusBadRequest,
	errors.UnknownOperationType.Code:            http.StatusBadRequest,
	errors.TransactionAlreadyExists.Code:        http.StatusConflict,
	errors.TransactionNotFound.Code:             http.StatusNotFound,
	errors.InvalidMessageVersion.Code:           http.StatusBadRequest,
	errors.DuplicatedOperation.Code:             http.StatusBadRequest,

	errors.Unauthorized.Code:          http.StatusUnauthorized,
	errors.StorageOverflow.Code:       http.StatusConflict,
	errors.NameTooLong.Code:           http.StatusBadRequest,
	errors.CandidateDoesNotExist.Code: http.StatusNotFound,
	errors.InvalidVoteCount.Code:      http.StatusBadRequest,
	errors.InvalidCandidateName.Code:  http.StatusBadRequest,

	errors.BadRequestParameter.Code:     http.StatusBadRequest,
	errors.PageQueryLimitMaxExceed.Code: http.StatusBadRequest,
	errors.ContentTypeNotJSON.Code:      http.StatusUnsupportedMediaType,
}

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
	}
	return http.StatusInternalServerError
}
