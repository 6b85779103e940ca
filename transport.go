package ofx

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang/glog"
)

// requestTimeout bounds one request/response exchange with an institution.
const requestTimeout = 60 * time.Second

// send issues the query and applies the cookie-retry rule: a successful
// response with a zero-length body and a Set-Cookie header gets exactly one
// retry carrying that cookie. Whatever the second attempt yields is final;
// retried reports whether the retry happened.
func (c *Client) send(ctx context.Context, query string) (body string, retried bool, err error) {
	body, header, err := c.do(ctx, query, "")
	if err != nil {
		return "", false, err
	}
	cookie := header.Get("Set-Cookie")
	if len(body) == 0 && cookie != "" {
		glog.V(2).Info("got 0-length success response with Set-Cookie header; retrying request with cookies")
		body, _, err = c.do(ctx, query, cookie)
		if err != nil {
			return "", true, err
		}
		return body, true, nil
	}
	return body, false, nil
}

// do performs a single POST of the query to the institution URL with the
// fixed OFX header set, plus a Cookie when retrying.
func (c *Client) do(ctx context.Context, query, cookie string) (string, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.FI.URL, strings.NewReader(query))
	if err != nil {
		return "", nil, &TransportError{URL: c.FI.URL, Err: err}
	}
	req.Header.Set("Accept", c.Accept)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Content-Type", "application/x-ofx")
	req.Header.Set("Connection", "keep-alive")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	glog.V(2).Infof("posting %d bytes to %s", len(query), c.FI.URL)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", nil, &TransportError{URL: c.FI.URL, Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, c.transportError(ctx, err)
	}
	glog.V(3).Infof("response body: %s", raw)
	return string(raw), resp.Header, nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	te := &TransportError{URL: c.FI.URL, Err: err}
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled:
		te.Cancelled = true
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		te.Timeout = true
	}
	return te
}
