package iohttp

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxa/pkg/errcode"
	"github.com/gnames/gntaxa/pkg/taxon"
)

// RequestError is created when a request cannot be sent or the
// connection fails.
func RequestError(src taxon.Source, url string, err error) error {
	msg := `Cannot reach <em>%s</em>

<em>URL:</em> %s

<em>Possible causes:</em>
  - No network connection
  - The service is down
  - Wrong base URL in config.yaml`
	vars := []any{src.Title(), url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HTTPRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: request to %s failed: %w",
			fn.Name(), src, err),
	}
}

// StatusError is created for responses with non-2xx status codes
// (except 404 which means "no records").
func StatusError(src taxon.Source, url string, status int) error {
	msg := "<em>%s</em> returned HTTP status <em>%d</em> for %s"
	vars := []any{src.Title(), status, url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HTTPStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s returned status %d",
			fn.Name(), src, status),
	}
}

// UnexpectedResponseError is created when a response does not fit the
// schema expected for the source.
func UnexpectedResponseError(src taxon.Source, url string, err error) error {
	msg := `Unexpected response from <em>%s</em>

<em>URL:</em> %s

The API of the source might have changed.`
	vars := []any{src.Title(), url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnexpectedResponseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode %s response: %w",
			fn.Name(), src, err),
	}
}

// RateLimitError is created when waiting for the rate limiter is
// interrupted (usually by a cancelled context).
func RateLimitError(src taxon.Source, err error) error {
	msg := "Waiting for <em>%s</em> rate limit was interrupted"
	vars := []any{src.Title()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RateLimitError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: rate limit wait for %s: %w",
			fn.Name(), src, err),
	}
}
