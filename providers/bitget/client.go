// Package bitget implements gateway.Connector against Bitget's spot and
// USDT/USDC/COIN-margined futures v2 REST APIs.
package bitget

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

	"github.com/btcsuite/btclog"

	"github.com/daglabs/gatewaygo/internal/clock"
	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/httptransport"
	"github.com/daglabs/gatewaygo/internal/obs"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
	"github.com/daglabs/gatewaygo/pkg/types"
)

const host = "https://api.bitget.com"

// Client is the Bitget gateway.Connector implementation.
type Client struct {
	futures    types.FuturesMode
	key        string
	secret     string
	passphrase string
	demo       bool

	http  *http.Client
	gov   *governor.BitgetLedger
	clk   clock.Clock
	log   btclog.Logger
	spawn func(func())
}

// New constructs a Bitget connector. demo selects the demo-trading mode
// that prefixes symbols with "S" (spec.md §4.4's Bitget symbol translation,
// BITGETENV=demo per spec.md §6).
func New(futures types.FuturesMode, key, secret, passphrase string, demo bool, clk clock.Clock) *Client {
	if clk == nil {
		clk = clock.New()
	}
	log := obs.Logger(obs.SubsystemBitget)
	return &Client{
		futures: futures, key: key, secret: secret, passphrase: passphrase, demo: demo,
		http:  httptransport.NewClient(10 * time.Second),
		gov:   governor.NewBitgetLedger(clk),
		clk:   clk,
		log:   log,
		spawn: obs.GoroutineWrapperFunc(log),
	}
}

func (c *Client) deps(endpoint string, weight int) facade.Deps {
	return facade.Deps{
		Governor: c.gov, Classifier: Classifier(), Clock: c.clk,
		Endpoint: endpoint, Kind: governor.KindRequest, Weight: weight,
	}
}

// productType returns the product-type suffix Bitget's v2 APIs expect
// (spec.md §4.4: decide by quote-asset suffix). In demo mode the
// productType itself gets the "S" prefix (e.g. "SUSDT-FUTURES").
func (c *Client) productType(symbol string) string {
	prefix := ""
	if c.demo {
		prefix = "S"
	}
	switch {
	case strings.HasSuffix(symbol, "USDT"):
		return prefix + "USDT-FUTURES"
	case strings.HasSuffix(symbol, "USDC"):
		return prefix + "USDC-FUTURES"
	default:
		return prefix + "COIN-FUTURES"
	}
}

// translateSymbol applies the demo "S" prefix when constructed in demo mode
// (spec.md §4.4).
func (c *Client) translateSymbol(symbol string) string {
	if c.demo && c.futures != types.FuturesNone {
		return "S" + symbol
	}
	return symbol
}

func (c *Client) sign(ts, method, path, query, body string) string {
	prehash := ts + strings.ToUpper(method) + path
	if query != "" {
		prehash += "?" + query
	}
	prehash += body
	return httptransport.SignHMACSHA256Base64(c.secret, prehash)
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
		ts := strconv.FormatInt(c.clk.Now().UnixMilli(), 10)
		req.Header.Set("ACCESS-KEY", c.key)
		req.Header.Set("ACCESS-TIMESTAMP", ts)
		req.Header.Set("ACCESS-SIGN", c.sign(ts, method, path, query, string(body)))
		req.Header.Set("ACCESS-PASSPHRASE", c.passphrase)
	}
	if c.demo {
		req.Header.Set("paptrading", "1")
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
	var envelope struct {
		Code string          `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &retryclassifier.ExchangeError{Message: fmt.Sprintf("decode error: %v", err), HTTPStatus: resp.StatusCode}
	}
	if envelope.Code != "" && envelope.Code != "00000" {
		return &retryclassifier.ExchangeError{Code: envelope.Code, Message: envelope.Msg, HTTPStatus: resp.StatusCode}
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &retryclassifier.ExchangeError{Message: fmt.Sprintf("decode error: %v", err)}
	}
	return nil
}

func (c *Client) requireClient() error {
	if c == nil || c.http == nil {
		return fmt.Errorf("Cannot connect to Bitget")
	}
	return nil
}

func (c *Client) requireFutures() error {
	if c.futures == types.FuturesNone {
		return fmt.Errorf("Futures type missed")
	}
	return nil
}
