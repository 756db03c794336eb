package common

import "math"

const (
	// DefaultMaxNameLength is the maximum length of candidate name in bytes.
	DefaultMaxNameLength int = 64

	// DefaultOperationsInTransactionLimit is the default maximum number of
	// operations in one transaction.
	DefaultOperationsInTransactionLimit int = 100

	// MaxVoteCount is the upper bound of the votes of one candidate.
	MaxVoteCount VoteCount = math.MaxUint32

	// RateLimitAPI is the default rate limit rule for the api endpoints.
	RateLimitAPI string = "100-S"

	// HTTPCacheAdapter is the default cache of the receipt responses.
	HTTPCacheAdapter string = "memory://"

	// HTTPCachePoolSize is the number of receipts kept in memory cache.
	HTTPCachePoolSize int = 10000

	DefaultNetworkID string = "tally-network"
)
