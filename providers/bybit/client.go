// Package bybit implements gateway.Connector against Bybit's unified v5
// REST API, covering both spot and usdm/coinm (linear/inverse) derivatives
// through one client forked by FuturesMode (spec.md §4.4).
package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
	"github.com/daglabs/gatewaygo/internal/facade"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/httptransport"
	"github.com/daglabs/gatewaygo/internal/obs"
	"github.com/daglabs/gatewaygo/internal/retryclassifier"
	"github.com/daglabs/gatewaygo/pkg/types"
)

const host = "https://api.bybit.com"

// Client is the Bybit gateway.Connector implementation.
type Client struct {
	futures types.FuturesMode
	key     string
	secret  string

	http *http.Client
	gov  governor.Governor
	clk  clock.Clock
	log  interface {
		Debugf(format string, args ...interface{})
		Warnf(format string, args ...interface{})
	}

	// accountType/marginMode are queried once per instance and cached
	// (spec.md §4.4 "Cache of account metadata"). accountType supplies the
	// wallet-balance query's accountType parameter; marginMode is cached but
	// no query reads it, and position queries use neither field.
	metaOnce    sync.Once
	accountType string
	marginMode  string
	metaErr     error
}

// New constructs a Bybit connector.
func New(futures types.FuturesMode, key, secret string, clk clock.Clock) *Client {
	if clk == nil {
		clk = clock.New()
	}
	return &Client{
		futures: futures,
		key:     key,
		secret:  secret,
		http:    httptransport.NewClient(10 * time.Second),
		gov:     governor.NewBybitLedger(clk),
		clk:     clk,
		log:     obs.Logger(obs.SubsystemBybit),
	}
}

func (c *Client) deps(endpoint string, weight int) facade.Deps {
	return facade.Deps{
		Governor:   c.gov,
		Classifier: Classifier(),
		Clock:      c.clk,
		Endpoint:   endpoint,
		Kind:       governor.KindRequest,
		Weight:     weight,
	}
}

func (c *Client) category() string {
	switch c.futures {
	case types.FuturesUSDM:
		return "linear"
	case types.FuturesCoinM:
		return "inverse"
	default:
		return "spot"
	}
}

func (c *Client) sign(timestamp, payload string) string {
	return httptransport.SignHMACSHA256Hex(c.secret, timestamp+c.key+"5000"+payload)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body []byte, signed bool, out interface{}) error {
	full := host + path
	var payload string
	if method == http.MethodGet {
		payload = q.Encode()
		if payload != "" {
			full += "?" + payload
		}
	} else {
		payload = string(body)
	}
	var reqBody io.Reader
	if method != http.MethodGet {
		reqBody = strings.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, full, reqBody)
	if err != nil {
		return &retryclassifier.ExchangeError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if signed {
		ts := strconv.FormatInt(c.clk.Now().UnixMilli(), 10)
		req.Header.Set("X-BAPI-API-KEY", c.key)
		req.Header.Set("X-BAPI-TIMESTAMP", ts)
		req.Header.Set("X-BAPI-RECV-WINDOW", "5000")
		req.Header.Set("X-BAPI-SIGN", c.sign(ts, payload))
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
		RetCode int             `json:"retCode"`
		RetMsg  string          `json:"retMsg"`
		Result  json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &retryclassifier.ExchangeError{Message: fmt.Sprintf("decode error: %v", err), HTTPStatus: resp.StatusCode}
	}
	if envelope.RetCode != 0 {
		return &retryclassifier.ExchangeError{
			Code:       strconv.Itoa(envelope.RetCode),
			Message:    envelope.RetMsg,
			HTTPStatus: resp.StatusCode,
		}
	}
	if out == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return &retryclassifier.ExchangeError{Message: fmt.Sprintf("decode error: %v", err)}
	}
	return nil
}

// accountMeta fetches and caches accountType/marginMode once per instance.
func (c *Client) accountMeta(ctx context.Context) (string, string, error) {
	c.metaOnce.Do(func() {
		var out struct {
			List []struct {
				UnifiedMarginStatus int    `json:"unifiedMarginStatus"`
				MarginMode          string `json:"marginMode"`
			} `json:"list"`
		}
		c.metaErr = c.do(ctx, http.MethodGet, "/v5/account/info", url.Values{}, nil, true, &out)
		if c.metaErr == nil {
			c.accountType = "UNIFIED"
			if len(out.List) > 0 {
				c.marginMode = out.List[0].MarginMode
			}
		}
	})
	return c.accountType, c.marginMode, c.metaErr
}

func (c *Client) requireClient() error {
	if c == nil || c.http == nil {
		return fmt.Errorf("Cannot connect to Bybit")
	}
	return nil
}

func (c *Client) requireFutures() error {
	if c.futures == types.FuturesNone {
		return fmt.Errorf("Futures type missed")
	}
	return nil
}
