package serverlist

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	// DefaultAddress is the public Minetest server list.
	DefaultAddress = "https://servers.minetest.net/list"
	// DefaultListField is the top-level field holding the record array.
	DefaultListField = "list"
	// DefaultTimeout bounds the whole HTTP exchange.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "mtlist"
)

// Options configures a Fetcher. Zero values fall back to the defaults above.
type Options struct {
	ListField string
	Timeout   time.Duration
	UserAgent string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		ListField: DefaultListField,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher downloads and decodes a server directory.
type Fetcher struct {
	listField string
	userAgent string
	client    *http.Client
}

// NewFetcher constructs a Fetcher. opts may be nil.
func NewFetcher(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	f := &Fetcher{
		listField: opts.ListField,
		userAgent: opts.UserAgent,
		client:    &http.Client{Timeout: opts.Timeout},
	}
	if f.listField == "" {
		f.listField = DefaultListField
	}
	if f.userAgent == "" {
		f.userAgent = DefaultUserAgent
	}
	if f.client.Timeout <= 0 {
		f.client.Timeout = DefaultTimeout
	}
	return f
}

// Fetch performs one GET against address and decodes the response.
func (f *Fetcher) Fetch(ctx context.Context, address string) (Directory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, &TransportError{Address: address, Cause: errors.Wrap(err, "cannot build request")}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{Address: address, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Address: address,
			Status:  resp.StatusCode,
			Cause:   errors.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Address: address, Cause: errors.Wrap(err, "cannot read response body")}
	}

	dir, err := Decode(body, f.listField)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Address = address
		}
		return nil, err
	}
	return dir, nil
}

// Decode parses body as an object whose listField holds an array of objects.
func Decode(body []byte, listField string) (Directory, error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{Reason: "body is not valid JSON"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &DecodeError{Reason: "top-level value is not an object"}
	}

	// Walk the members instead of root.Get so field names containing gjson
	// path syntax ('.', '*', '?') are matched literally.
	var list gjson.Result
	found := false
	root.ForEach(func(k, v gjson.Result) bool {
		if k.String() == listField {
			list, found = v, true
		}
		return true
	})
	if !found {
		return nil, &DecodeError{Reason: "missing field " + quote(listField)}
	}
	if !list.IsArray() {
		return nil, &DecodeError{Reason: "field " + quote(listField) + " is not an array"}
	}

	var (
		dir    Directory
		badIdx = -1
	)
	i := 0
	list.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			badIdx = i
			return false
		}
		dir = append(dir, NewRecord(v))
		i++
		return true
	})
	if badIdx >= 0 {
		return nil, &DecodeError{
			Reason: "malformed record",
			Cause:  errors.Errorf("%s[%d] is not an object", listField, badIdx),
		}
	}
	if dir == nil {
		dir = Directory{}
	}
	return dir, nil
}

func quote(s string) string { return `"` + s + `"` }
