package binance

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/daglabs/gatewaygo/internal/clock"
	"github.com/daglabs/gatewaygo/internal/governor"
	"github.com/daglabs/gatewaygo/internal/httptransport"
	"github.com/daglabs/gatewaygo/internal/obs"
	"github.com/daglabs/gatewaygo/internal/testsupport"
	"github.com/daglabs/gatewaygo/pkg/types"
)

// newTestClient builds a Client wired at the package level (bypassing New's
// fixed host selection) so its HTTP traffic can be pointed at an
// httptest.Server instead of a live Binance endpoint.
func newTestClient(host string, clk clock.Clock) *Client {
	return &Client{
		domain:  governor.DomainSpotCom,
		futures: types.FuturesNone,
		key:     "test-key",
		secret:  "test-secret",
		host:    host,
		http:    httptransport.NewClient(5 * time.Second),
		gov:     governor.NewBinanceLedger(governor.DomainSpotCom, clk),
		clk:     clk,
		log:     obs.Logger(obs.SubsystemBinance),
	}
}

func TestLatestPriceEndToEnd(t *testing.T) {
	srv := testsupport.StaticServer(testsupport.JSONResponse{
		StatusCode: 200,
		Body:       `{"symbol":"BTCUSDT","price":"27123.45"}`,
	})
	defer srv.Close()

	fake := clock.NewFake(time.Unix(0, 0))
	c := newTestClient(srv.URL, fake)

	result := c.LatestPrice(context.Background(), "BTCUSDT")
	if !result.IsOk() {
		reason, _ := result.Reason()
		t.Fatalf("LatestPrice failed: %s", reason)
	}
	price, _ := result.Data()
	if price != "27123.45" {
		t.Errorf("LatestPrice = %q, want \"27123.45\"", price)
	}
}

func TestLatestPriceRetriesTransientErrorThenSucceeds(t *testing.T) {
	srv, count := testsupport.CountingServer(func(w http.ResponseWriter, r *http.Request) {
		n := int(*count)
		if n < 3 {
			w.WriteHeader(503)
			_, _ = w.Write([]byte(`{"code":-1008, "msg": "server is currently overloaded, too many requests"}`))
			return
		}
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"symbol":"BTCUSDT","price":"27000.00"}`))
	})
	defer srv.Close()

	fake := clock.NewFake(time.Unix(0, 0))
	c := newTestClient(srv.URL, fake)

	result := c.LatestPrice(context.Background(), "BTCUSDT")
	if !result.IsOk() {
		reason, _ := result.Reason()
		t.Fatalf("LatestPrice failed: %s", reason)
	}
	price, _ := result.Data()
	if price != "27000.00" {
		t.Errorf("LatestPrice = %q, want \"27000.00\"", price)
	}
	if int(*count) != 3 {
		t.Errorf("server received %d requests, want 3 (two transient failures then a success)", *count)
	}
}

func TestLatestPriceFailsTerminallyOnBusinessRejection(t *testing.T) {
	srv := testsupport.StaticServer(testsupport.JSONResponse{
		StatusCode: 400,
		Body:       `{"code":-1121, "msg": "Invalid symbol."}`,
	})
	defer srv.Close()

	fake := clock.NewFake(time.Unix(0, 0))
	c := newTestClient(srv.URL, fake)

	result := c.LatestPrice(context.Background(), "NOTASYMBOL")
	if result.IsOk() {
		t.Fatal("LatestPrice succeeded, want a terminal failure for an invalid symbol")
	}
	reason, _ := result.Reason()
	if reason != "Invalid symbol." {
		t.Errorf("LatestPrice reason = %q, want \"Invalid symbol.\"", reason)
	}
}

func TestLatestPriceReconcilesUsedWeightHeader(t *testing.T) {
	srv := testsupport.StaticServer(testsupport.JSONResponse{
		StatusCode: 200,
		Body:       `{"symbol":"BTCUSDT","price":"27000"}`,
		Headers:    map[string]string{"X-Mbx-Used-Weight-1m": "500"},
	})
	defer srv.Close()

	fake := clock.NewFake(time.Unix(0, 0))
	c := newTestClient(srv.URL, fake)

	result := c.LatestPrice(context.Background(), "BTCUSDT")
	if !result.IsOk() {
		reason, _ := result.Reason()
		t.Fatalf("LatestPrice failed: %s", reason)
	}

	usage := result.Usage()
	var weightFraction float64
	for _, u := range usage {
		if u.Type == "weight" {
			weightFraction = u.Fraction
		}
	}
	// The fake clock sits before the spot-com cutover, so the weight ceiling
	// is 950 and the reconciled count of 500 replaces the local debit.
	if want := 500.0 / 950.0; weightFraction != want {
		t.Errorf("weight usage = %v, want %v (reconciled server-reported weight, not just the local debit)", weightFraction, want)
	}
}
