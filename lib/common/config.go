package common

// Config keeps the settings which are fixed when the node starts.
// Every node in the same network must use the same values except the
// rate limit rule and the cache size.
type Config struct {
	NetworkID []byte

	OpsLimit      int
	MaxNameLength int

	// RequireRegisteredCandidate rejects the votes for candidates which were
	// not added before. By default the first vote creates the candidate.
	RequireRegisteredCandidate bool

	// Those fields are not state-related
	RateLimitRuleAPI  RateLimitRule
	HTTPCacheAdapter  string
	HTTPCachePoolSize int
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.OpsLimit = DefaultOperationsInTransactionLimit
	p.MaxNameLength = DefaultMaxNameLength

	p.RateLimitRuleAPI = MustNewRateLimitRule(RateLimitAPI)
	p.HTTPCacheAdapter = HTTPCacheAdapter
	p.HTTPCachePoolSize = HTTPCachePoolSize

	return p
}
