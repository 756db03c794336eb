package common

// NewTestConfig is the config for unittests; the voting rules are the
// defaults.
func NewTestConfig() Config {
	p := NewConfig([]byte("tally-unittest"))
	p.RateLimitRuleAPI = RateLimitRule{}

	return p
}
