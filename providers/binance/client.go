// Package binance implements gateway.Connector against Binance's spot
// (com/us) and USDM/COINM futures REST APIs (spec.md §4.2/§4.4, §6).
//
// One Client forks internally between spot and futures request paths based
// on the FuturesMode it was constructed with; callers only ever see the
// gateway.Connector surface.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/httptransport"
	"github.com/daglabs/gatewaygo/internal/obs"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
	"github.com/daglabs/gatewaygo/pkg/types"
)

const (
	hostSpotCom = "https://api.binance.com"
	hostSpotUS  = "https://api.binance.us"
	hostUSDM    = "https://fapi.binance.com"
	hostCoinM   = "https://dapi.binance.com"
)

// Client is the Binance gateway.Connector implementation.
type Client struct {
	domain  governor.BinanceDomain
	futures types.FuturesMode
	key     string
	secret  string
	host    string

	http *http.Client
	gov  *governor.BinanceLedger
	clk  clock.Clock
	log  interface {
		Debugf(format string, args ...interface{})
		Warnf(format string, args ...interface{})
	}
}

// New constructs a Binance connector. domain selects which of the four
// independently-ledgered products (spot-com, spot-us, usdm, coinm) this
// instance talks to; it also determines FuturesMode (spot-com/spot-us are
// always types.FuturesNone).
func New(domain governor.BinanceDomain, key, secret string, clk clock.Clock) *Client {
	if clk == nil {
		clk = clock.New()
	}
	futures := types.FuturesNone
	host := hostSpotCom
	switch domain {
	case governor.DomainSpotUS:
		host = hostSpotUS
	case governor.DomainUSDM:
		host = hostUSDM
		futures = types.FuturesUSDM
	case governor.DomainCoinM:
		host = hostCoinM
		futures = types.FuturesCoinM
	}
	return &Client{
		domain:  domain,
		futures: futures,
		key:     key,
		secret:  secret,
		host:    host,
		http:    httptransport.NewClient(10 * time.Second),
		gov:     governor.NewBinanceLedger(domain, clk),
		clk:     clk,
		log:     obs.Logger(obs.SubsystemBinance),
	}
}

func (c *Client) deps(endpoint string, kind governor.Kind, weight int, timeout time.Duration) facade.Deps {
	return facade.Deps{
		Governor:   c.gov,
		Classifier: Classifier(),
		Clock:      c.clk,
		Timeout:    timeout,
		Endpoint:   endpoint,
		Kind:       kind,
		Weight:     weight,
	}
}

// signedQuery signs params with HMAC-SHA256 and returns the full,
// URL-encoded query string including signature (spec.md §6 Binance
// request signing).
func (c *Client) signedQuery(params url.Values) string {
	params.Set("timestamp", strconv.FormatInt(c.clk.Now().UnixMilli(), 10))
	params.Set("recvWindow", "5000")
	raw := params.Encode()
	sig := httptransport.SignHMACSHA256Hex(c.secret, raw)
	return raw + "&signature=" + sig
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, signed bool, out interface{}) error {
	qs := query.Encode()
	if signed {
		qs = c.signedQuery(query)
	}
	full := c.host + path
	if qs != "" {
		full += "?" + qs
	}
	req, err := http.NewRequestWithContext(ctx, method, full, nil)
	if err != nil {
		return &retryclassifier.ExchangeError{Message: err.Error()}
	}
	if c.key != "" {
		req.Header.Set("X-MBX-APIKEY", c.key)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &retryclassifier.ExchangeError{Message: err.Error()}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryclassifier.ExchangeError{Message: err.Error(), HTTPStatus: resp.StatusCode}
	}

	c.reconcileHeaders(resp.Header)

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return &retryclassifier.ExchangeError{
			Code:       strconv.Itoa(apiErr.Code),
			Message:    apiErr.Msg,
			HTTPStatus: resp.StatusCode,
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &retryclassifier.ExchangeError{Message: fmt.Sprintf("decode error: %v", err)}
	}
	return nil
}

// reconcileHeaders applies Binance's server-reported usage counters back
// onto the local ledger so local accounting never drifts from what the
// exchange actually believes (spec.md §4.2's header reconciliation).
func (c *Client) reconcileHeaders(h http.Header) {
	if v := h.Get("X-Mbx-Used-Weight-1m"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.gov.Apply(governor.GovernorHint{ReconcileHeader: &governor.HeaderReconciliation{
				Kind: governor.KindRequest, ServerCount: n,
			}})
		}
	}
	orderHeader := "X-Mbx-Order-Count-10s"
	if c.domain == governor.DomainUSDM {
		orderHeader = "X-Mbx-Order-Count-1m"
	}
	if v := h.Get(orderHeader); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.gov.Apply(governor.GovernorHint{ReconcileHeader: &governor.HeaderReconciliation{
				Kind: governor.KindOrder, ServerCount: n,
			}})
		}
	}
}

func (c *Client) requireClient() error {
	if c == nil || c.http == nil {
		return fmt.Errorf("Cannot connect to Binance")
	}
	return nil
}

func (c *Client) requireFutures() error {
	if c.futures == types.FuturesNone {
		return fmt.Errorf("Futures type missed")
	}
	return nil
}
