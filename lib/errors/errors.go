package errors

var (
	// storage
	StorageRecordDoesNotExist  = NewError(100, "record does not exist")
	StorageRecordAlreadyExists = NewError(101, "record already exists")
	StorageCoreError           = NewError(102, "storage error")
	NotImplemented             = NewError(103, "not implemented")
	InvalidStorageConfig       = NewError(104, "invalid storage config")

	// transaction
	BadPublicAddress                = NewError(110, "failed to parse public address")
	TransactionEmptyOperations      = NewError(111, "operations are empty")
	TransactionHasOverMaxOperations = NewError(112, "too many operations in transaction")
	InvalidTransactionHash          = NewError(113, "invalid transaction hash")
	InvalidOperation                = NewError(114, "invalid operation")
	UnknownOperationType            = NewError(115, "unknown operation type")
	TransactionAlreadyExists        = NewError(116, "transaction already applied")
	TransactionNotFound             = NewError(117, "transaction not found")
	InvalidMessageVersion           = NewError(118, "invalid message version")
	DuplicatedOperation             = NewError(119, "duplicated operation in transaction")

	// voting
	Unauthorized          = NewError(120, "origin is not signed")
	StorageOverflow       = NewError(121, "vote count overflow")
	NameTooLong           = NewError(122, "candidate name is too long")
	CandidateDoesNotExist = NewError(123, "candidate does not exist")
	InvalidVoteCount      = NewError(124, "invalid vote count")
	InvalidCandidateName  = NewError(125, "candidate name is not valid utf-8")

	// api and config
	BadRequestParameter     = NewError(130, "bad request parameter")
	PageQueryLimitMaxExceed = NewError(131, "limit exceeds the maximum")
	InvalidRateLimitRule    = NewError(132, "invalid rate limit rule")
	ContentTypeNotJSON      = NewError(133, "Content-Type must be application/json")
	HTTPServerError         = NewError(134, "unexpected error in server")
	InvalidHTTPCacheConfig  = NewError(135, "invalid http cache config")
)
