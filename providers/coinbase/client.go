// Package coinbase implements gateway.Connector against Coinbase's
// Advanced Trade REST API. Coinbase has no derivatives here (spec.md §4.4):
// every Futures* method answers "Futures type missed" unconditionally.
package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/httptransport"
	"github.com/daglabs/gatewaygo/internal/obs"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
)

const host = "https://api.coinbase.com"

// httpCeiling is Coinbase's explicitly enforced 5-minute HTTP ceiling
// (spec.md §4.4 "Cancellation").
const httpCeiling = 5 * time.Minute

// Client is the Coinbase gateway.Connector implementation.
type Client struct {
	key          string
	secret       string
	defaultKey   string
	defaultSecret string
	usingDefault bool

	http *http.Client
	gov  *governor.CoinbaseLedger
	clk  clock.Clock
	log  interface {
		Debugf(format string, args ...interface{})
		Warnf(format string, args ...interface{})
	}
}

// New constructs a Coinbase connector. defaultKey/defaultSecret are the
// COINBASEKEY/COINBASESECRET fallback credentials used for public endpoints
// when the caller supplies no user credentials (spec.md §6).
func New(key, secret, defaultKey, defaultSecret string, clk clock.Clock) *Client {
	if clk == nil {
		clk = clock.New()
	}
	usingDefault := key == "" && secret == ""
	if usingDefault {
		key, secret = defaultKey, defaultSecret
	}
	return &Client{
		key: key, secret: secret, defaultKey: defaultKey, defaultSecret: defaultSecret, usingDefault: usingDefault,
		http: httptransport.NewClient(httpCeiling),
		gov:  governor.NewCoinbaseLedger(clk),
		clk:  clk,
		log:  obs.Logger(obs.SubsystemCoinbase),
	}
}

func (c *Client) deps(bucket governor.CoinbaseBucket, endpoint string, weight int) facade.Deps {
	kind := governor.KindRequest
	if bucket == governor.CoinbasePrivate {
		kind = governor.KindOrder
	}
	return facade.Deps{
		Governor: c.gov, Classifier: Classifier(), Clock: c.clk,
		Endpoint: endpoint, Kind: kind, Weight: weight, Timeout: httpCeiling,
	}
}

func (c *Client) sign(ts, method, path, body string) string {
	prehash := ts + strings.ToUpper(method) + path + body
	return httptransport.SignHMACSHA256Hex(c.secret, prehash)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body []byte, signed bool, out interface{}) error {
	full := host + path
	query := q.Encode()
	if query != "" {
		full += "?" + query
	}
	var reqBody io.Reader
	if len(body) > 0 {
		reqBody = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, full, reqBody)
	if err != nil {
		return &retryclassifier.ExchangeError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if signed {
		ts := strconv.FormatInt(c.clk.Now().Unix(), 10)
		req.Header.Set("CB-ACCESS-KEY", c.key)
		req.Header.Set("CB-ACCESS-SIGN", c.sign(ts, method, path, string(body)))
		req.Header.Set("CB-ACCESS-TIMESTAMP", ts)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &retryclassifier.ExchangeError{Message: err.Error()}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryclassifier.ExchangeError{Message: err.Error(), HTTPStatus: resp.StatusCode}
	}
	if resp.StatusCode >= 400 {
		var errBody struct {
			Error            string `json:"error"`
			Message          string `json:"message"`
			SuccessResponse  struct {
				OrderId string `json:"order_id"`
			} `json:"success_response"`
		}
		_ = json.Unmarshal(raw, &errBody)
		msg := errBody.Message
		if msg == "" {
			msg = string(raw)
		}
		if errBody.SuccessResponse.OrderId != "" {
			return &OrderCreatedDespiteError{OrderID: errBody.SuccessResponse.OrderId, Underlying: &retryclassifier.ExchangeError{Message: msg, HTTPStatus: resp.StatusCode}}
		}
		return &retryclassifier.ExchangeError{Message: msg, HTTPStatus: resp.StatusCode}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &retryclassifier.ExchangeError{Message: fmt.Sprintf("decode error: %v", err)}
	}
	return nil
}

// OrderCreatedDespiteError wraps the HTTP-error-but-order-exists case
// (spec.md §4.3 "Coinbase order-created-but-HTTP-errored", §8 scenario S6):
// the thrown error's body still carries a populated order id, so the
// Facade must not retry the POST and instead issue one follow-up GET.
type OrderCreatedDespiteError struct {
	OrderID    string
	Underlying error
}

func (e *OrderCreatedDespiteError) Error() string { return e.Underlying.Error() }
func (e *OrderCreatedDespiteError) Unwrap() error  { return e.Underlying }

func (c *Client) requireClient() error {
	if c == nil || c.http == nil {
		return fmt.Errorf("Cannot connect to Coinbase")
	}
	return nil
}
