package common

import (
	"github.com/ulule/limiter"

	"boscoin.io/tally/lib/errors"
)

// RateLimitRule wraps the rate of `github.com/ulule/limiter`, like "100-S"
// (100 requests per second) or "1000-H".
type RateLimitRule struct {
	Formatted string
	Rate      limiter.Rate
}

func NewRateLimitRule(s string) (rule RateLimitRule, err error) {
	var rate limiter.Rate
	if rate, err = limiter.NewRateFromFormatted(s); err != nil {
		err = errors.InvalidRateLimitRule.Clone().SetData("rule", s)
		return
	}

	rule = RateLimitRule{Formatted: s, Rate: rate}
	return
}

func MustNewRateLimitRule(s string) RateLimitRule {
	rule, err := NewRateLimitRule(s)
	if err != nil {
		panic(err)
	}

	return rule
}

// IsUnlimited is true when the rule was not set or the limit is zero.
func (r RateLimitRule) IsUnlimited() bool {
	return r.Rate.Limit < 1
}
