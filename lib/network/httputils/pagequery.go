package httputils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"boscoin.io/tally/lib/errors"
	"boscoin.io/tally/lib/storage"
)

const DefaultMaxLimit uint64 = 100

// PageQuery parses `cursor`, `limit` and `reverse` of the list request.
type PageQuery struct {
	request *http.Request
	cursor  []byte
	reverse bool
	limit   uint64
}

func NewPageQuery(r *http.Request) (*PageQuery, error) {
	p := &PageQuery{
		request: r,
		limit:   DefaultMaxLimit,
	}
	err := p.parseRequest()
	return p, err
}

func (p *PageQuery) Limit() uint64 {
	return p.limit
}

func (p *PageQuery) Reverse() bool {
	return p.reverse
}

func (p *PageQuery) Cursor() []byte {
	return p.cursor
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) PrevLink(cursor []byte) string {
	return p.link(cursor, !p.reverse)
}

func (p *PageQuery) NextLink(cursor []byte) string {
	return p.link(cursor, p.reverse)
}

func (p *PageQuery) ListOptions() storage.ListOptions {
	return storage.NewDefaultListOptions(p.reverse, p.cursor, p.limit)
}

func (p *PageQuery) link(cursor []byte, reverse bool) string {
	query := storage.NewDefaultListOptions(reverse, cursor, p.limit).URLValues().Encode()
	return fmt.Sprintf("%s?%s", p.request.URL.Path, query)
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	if r := q.Get("reverse"); r != "" {
		reverse, err := strconv.ParseBool(r)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData("reverse", r)
		}
		p.reverse = reverse
	}

	if c := q.Get("cursor"); c != "" {
		p.cursor = []byte(c)
	}

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData("limit", l)
		}
		if limit > DefaultMaxLimit {
			return errors.PageQueryLimitMaxExceed.Clone().SetData("max", DefaultMaxLimit)
		}
		if limit > 0 {
			p.limit = limit
		}
	}

	return nil
}

func (p *PageQuery) URLValues() url.Values {
	return p.ListOptions().URLValues()
}
