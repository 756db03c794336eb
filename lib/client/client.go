package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/pkg/errors"

	"boscoin.io/tally/lib/event"
	"boscoin.io/tally/lib/transaction"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlNodeInfo          = "/"
	UrlCandidates        = "/candidates"
	UrlCandidate         = "/candidates/{id}"
	UrlTransactions      = "/transactions"
	UrlTransactionByHash = "/transactions/{id}"
	UrlEvents            = "/events"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
	QueryType    QueryKey = "type"
	QueryTarget  QueryKey = "target"
	QuerySource  QueryKey = "source"
	QueryTxHash  QueryKey = "txhash"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		urlValues.Add(q.Key.String(), q.Value)
	}
	return "?" + urlValues.Encode()
}

type Client struct {
	URL string

	HTTP *HTTP2Client
}

// NewClient connects to the node at `url`, like "http://127.0.0.1:12345";
// nil `retrySetting` does not retry.
func NewClient(url string, retrySetting *RetrySetting) (*Client, error) {
	httpClient, err := NewHTTP2Client(0, 0, true, retrySetting)
	if err != nil {
		return nil, errors.Wrap(err, "failed to make http client")
	}

	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: httpClient,
	}, nil
}

// toResponse decodes the successful response to `response`; the others are
// returned as `Error`.
func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return errors.Wrapf(err, "failed to decode problem; status=%d", resp.StatusCode)
		}
		if p.Status == 0 {
			p.Status = resp.StatusCode
		}
		return Error{Problem: p}
	}

	if err = decoder.Decode(response); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return
}

func (c *Client) Get(path string, headers http.Header) (*http.Response, error) {
	resp, err := c.HTTP.Get(c.URL+UrlPrefixForAPIV1+path, headers)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}
	return resp, nil
}

func (c *Client) Post(path string, body []byte, headers http.Header) (*http.Response, error) {
	resp, err := c.HTTP.Post(c.URL+UrlPrefixForAPIV1+path, body, headers)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	return resp, nil
}

func (c *Client) load(path string, response interface{}) error {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.Get(path, headers)
	if err != nil {
		return err
	}

	return c.toResponse(resp, response)
}

func (c *Client) LoadNodeInfo() (info NodeInfo, err error) {
	err = c.load(UrlNodeInfo, &info)
	return
}

func (c *Client) LoadCandidate(address string) (candidate Candidate, err error) {
	err = c.load(strings.Replace(UrlCandidate, "{id}", address, -1), &candidate)
	return
}

func (c *Client) LoadCandidates(queries ...Q) (page CandidatesPage, err error) {
	err = c.load(UrlCandidates+Queries(queries).toQueryString(), &page)
	return
}

func (c *Client) LoadReceipt(hash string) (receipt Receipt, err error) {
	err = c.load(strings.Replace(UrlTransactionByHash, "{id}", hash, -1), &receipt)
	return
}

func (c *Client) SubmitTransaction(tx transaction.Transaction) (receipt Receipt, err error) {
	var body []byte
	if body, err = tx.Serialize(); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	var resp *http.Response
	if resp, err = c.Post(UrlTransactions, body, headers); err != nil {
		return
	}

	err = c.toResponse(resp, &receipt)
	return
}

// Stream calls `handler` with each line of the stream until the context is
// done or the handler returns error.
func (c *Client) Stream(ctx context.Context, path string, handler func(data []byte) error) error {
	request, err := http.NewRequest("GET", c.URL+UrlPrefixForAPIV1+path, nil)
	if err != nil {
		return err
	}
	request = request.WithContext(ctx)
	request.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTP.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Wrapf(err, "GET %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return c.toResponse(resp, nil)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "stream closed")
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if err = handler(line); err != nil {
			return err
		}
	}
}

// StreamEvents streams the committed events which match every query.
func (c *Client) StreamEvents(ctx context.Context, handler func(event.Record), queries ...Q) error {
	return c.Stream(ctx, UrlEvents+Queries(queries).toQueryString(), func(b []byte) error {
		var r event.Record
		if err := json.Unmarshal(b, &r); err != nil {
			return errors.Wrap(err, "failed to decode event")
		}
		handler(r)
		return nil
	})
}

// StreamCandidate streams the candidate after each change; the removal is
// sent as the event.
func (c *Client) StreamCandidate(ctx context.Context, address string, handler func(*Candidate, *event.Record)) error {
	return c.Stream(ctx, strings.Replace(UrlCandidate, "{id}", address, -1), func(b []byte) error {
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(b, &probe); err != nil {
			return errors.Wrap(err, "failed to decode stream")
		}

		if len(probe.Type) > 0 {
			var r event.Record
			if err := json.Unmarshal(b, &r); err != nil {
				return errors.Wrap(err, "failed to decode event")
			}
			handler(nil, &r)
			return nil
		}

		var v Candidate
		if err := json.Unmarshal(b, &v); err != nil {
			return errors.Wrap(err, "failed to decode candidate")
		}
		handler(&v, nil)
		return nil
	})
}
