package storage

import (
	"net/url"
	"strconv"
)

var DefaultMaxLimitListOptions uint64 = 100

// ListOptions controls `GetIterator`; zero limit means unlimited.
type ListOptions interface {
	Reverse() bool
	Cursor() []byte
	Limit() uint64
	URLValues() url.Values
}

type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	return &DefaultListOptions{
		reverse: reverse,
		cursor:  cursor,
		limit:   limit,
	}
}

func (o DefaultListOptions) Reverse() bool {
	return o.reverse
}

func (o DefaultListOptions) Cursor() []byte {
	return o.cursor
}

func (o DefaultListOptions) Limit() uint64 {
	return o.limit
}

func (o DefaultListOptions) URLValues() url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(o.reverse)},
	}

	if len(o.cursor) > 0 {
		v.Set("cursor", string(o.cursor))
	}
	if o.limit > 0 {
		v.Set("limit", strconv.FormatUint(o.limit, 10))
	}

	return v
}
